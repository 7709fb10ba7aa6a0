package main

import (
	"anchor/app"
	"anchor/config"
	"anchor/log"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	version        = "0.3.0"
	placementFlag  string
	motionFlag     bool
	placementsFlag string
	rootCmd        = &cobra.Command{
		Use:   "anchor",
		Short: "anchor - Align popups to their targets and watch them flip in a terminal playground.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()
			log.InitDebug()
			defer log.CloseDebug()

			cfg := config.LoadConfig()

			// Flags override config
			if placementFlag != "" {
				cfg.DefaultPlacement = placementFlag
			}
			if motionFlag {
				cfg.Motion = true
			}
			if placementsFlag != "" {
				abs, err := filepath.Abs(placementsFlag)
				if err != nil {
					return fmt.Errorf("invalid placements file: %w", err)
				}
				if _, err := config.LoadPlacements(abs); err != nil {
					return err
				}
				cfg.PlacementsFile = abs
			}

			defer log.GetProfiler().LogStats()
			return app.Run(ctx, cfg)
		},
	}

	alignOpts alignOptions
	alignCmd  = &cobra.Command{
		Use:   "align",
		Short: "Run one alignment pass and print the result as JSON",
		Example: `  anchor align --target 10,5,8,3 --popup 20,4 --placement bottom
  anchor align --target 10,20,8,3 --popup 20,6 --region 0,0,80,24 --points bc,tc --offset 0,-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runAlign(alignOpts, terminalViewport)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	listJSONFlag bool
	listFileFlag string
	placementsCmd = &cobra.Command{
		Use:   "placements",
		Short: "List the placement table",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(listFileFlag)
			if err != nil {
				return err
			}
			return printTable(cmd.OutOrStdout(), table, listJSONFlag)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			placements, err := cfg.PlacementsPath()
			if err != nil {
				return err
			}
			if placements == "" {
				placements = "(built-in only)"
			}
			fmt.Printf("Placements: %s\n", placements)
			fmt.Printf("Logs: %s, %s\n", filepath.Join(os.TempDir(), "anchor.log"), filepath.Join(os.TempDir(), "anchor-debug.log"))

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of anchor",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("anchor version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&placementFlag, "placement", "p", "",
		"Placement the popup starts with (e.g. 'top-left')")
	rootCmd.Flags().BoolVarP(&motionFlag, "motion", "m", false,
		"Play an open/close transition around every open change")
	rootCmd.Flags().StringVar(&placementsFlag, "placements-file", "",
		"Placement table (.json or .toml) merged over the built-ins and reloaded on change")

	f := alignCmd.Flags()
	f.StringVar(&alignOpts.target, "target", "", "Target rect as x,y,width,height")
	f.StringVar(&alignOpts.popup, "popup", "", "Popup size as width,height")
	f.StringVar(&alignOpts.region, "region", "", "Visible region as x,y,width,height (default: the terminal)")
	f.StringVar(&alignOpts.scroll, "scroll", "", "Scroll region as x,y,width,height (default: the visible region)")
	f.StringVar(&alignOpts.overflow, "overflow", "", "Overflow region policy: visible, scroll or visibleFirst")
	f.StringVarP(&alignOpts.placement, "placement", "p", "bottom", "Placement name")
	f.StringVar(&alignOpts.points, "points", "", "Explicit anchors as popup,target (e.g. tc,bc); overrides --placement")
	f.StringVar(&alignOpts.offset, "offset", "", "Popup offset as dx,dy; numbers or percentages of the popup size")
	f.StringVar(&alignOpts.targetOffset, "target-offset", "", "Target offset as dx,dy; numbers or percentages of the target size")
	f.StringVar(&alignOpts.point, "point", "", "Align to a pointer position x,y instead of the target")
	f.StringVar(&alignOpts.adjust, "adjust", "", "Overflow adjustment with --points: x, y, xy or none")
	f.Float64Var(&alignOpts.scale, "scale", 1, "Popup scale, e.g. 0.5 while a zoom motion plays")
	f.StringVar(&alignOpts.file, "file", "", "Placement table (.json or .toml) merged over the built-ins")
	_ = alignCmd.MarkFlagRequired("target")
	_ = alignCmd.MarkFlagRequired("popup")

	placementsCmd.Flags().StringVar(&listFileFlag, "file", "", "Placement table (.json or .toml) merged over the built-ins")
	placementsCmd.Flags().BoolVar(&listJSONFlag, "json", false, "Print the table as JSON")

	rootCmd.AddCommand(alignCmd)
	rootCmd.AddCommand(placementsCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
