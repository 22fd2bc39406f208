// ABOUTME: CLI commands for user preferences and the profile image.
// ABOUTME: Reads and writes the settings store; validates avatar images.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change preferences",
	Long: `Show or change preferences.

KEYS:

  sound           Play a terminal bell on timer start, pause, stop and target
  notifications   Allow notifications

EXAMPLES:

  sporttimer settings                      # Show every preference
  sporttimer settings get sound
  sporttimer settings set sound off
  sporttimer settings avatar set me.png    # JPEG or PNG, up to 5 MiB
  sporttimer settings avatar clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range settings.KnownKeys {
			v, err := store.GetBool(key, true)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", padRight(key, 24), onOff(v))
		}
		img, err := store.Image()
		if err != nil {
			return err
		}
		avatar := "none"
		if img != nil {
			avatar = fmt.Sprintf("%d bytes", len(img))
		}
		fmt.Printf("%s %s\n", padRight("avatar", 24), avatar)
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := settings.ValidateKey(args[0])
		if err != nil {
			return err
		}
		v, err := store.GetBool(key, true)
		if err != nil {
			return err
		}
		fmt.Println(onOff(v))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <on|off>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := settings.ValidateKey(args[0])
		if err != nil {
			return err
		}
		v, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		if err := store.SetBool(key, v); err != nil {
			return fmt.Errorf("failed to save setting: %w", err)
		}
		color.Green("✓ %s %s", key, onOff(v))
		return nil
	},
}

var avatarCmd = &cobra.Command{
	Use:   "avatar",
	Short: "Manage the profile image",
}

var avatarSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Store a JPEG or PNG profile image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := store.SetImage(data); err != nil {
			return err
		}
		color.Green("✓ Profile image saved (%d bytes)", len(data))
		return nil
	},
}

var avatarClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the profile image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ClearImage(); err != nil {
			return err
		}
		color.Green("✓ Profile image removed")
		return nil
	},
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid value: %s (use on or off)", s)
	}
	return v, nil
}

func init() {
	avatarCmd.AddCommand(avatarSetCmd, avatarClearCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, avatarCmd)
	rootCmd.AddCommand(settingsCmd)
}
