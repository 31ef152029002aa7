package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List compiled-in windowing backends",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("x11  X protocol via BurntSushi/xgb")
		fmt.Println("sdl  SDL2 via veandco/go-sdl2")
	},
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}
