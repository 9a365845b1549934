package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"boothbot/internal/handler"
)

var registerCmd = &cobra.Command{
	Use:   "register-commands",
	Short: "Overwrite the slash commands for the configured guild",
	Long: `Bulk-overwrites the /task and /event commands. Commands are registered on
discord.guild_id when set (available immediately), otherwise globally.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd.Context())
	},
}

func runRegister(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newDiscordClient(cfg)
	if err != nil {
		return err
	}
	cmds, err := client.OverwriteCommands(ctx, cfg.Discord.GuildID, handler.Commands())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	for _, c := range cmds {
		logger.Info("command registered", "name", c.Name, "id", c.ID, "guild_id", cfg.Discord.GuildID)
	}
	return nil
}
