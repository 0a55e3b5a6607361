package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressionsCmd)
}

var progressionsCmd = &cobra.Command{
	Use:   "progressions",
	Short: "Lists saved progressions",
	Long:  `Lists saved progressions, oldest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := context.Background()
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		all, err := st.List(ctx)
		if err != nil {
			return err
		}
		if len(all) == 0 {
			fmt.Println("No saved progressions")
			return nil
		}
		for _, p := range all {
			key := ""
			if p.KeySetting != nil {
				key = p.KeySetting.Tonic + " " + p.KeySetting.Mode
			}
			degrees := ""
			for i, e := range p.Events {
				if i > 0 {
					degrees += " "
				}
				degrees += e.Degree
			}
			fmt.Printf("%v  %-28v %-14v %v  %v\n", p.ID, p.Name, key, p.CreatedAt.Format("2006-01-02 15:04"), degrees)
		}
		return nil
	},
}
