package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"innkeep/internal/auth"
	"innkeep/internal/config"
	"innkeep/internal/models"
	"innkeep/internal/store"
)

type seedFile struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"users"`
	Rooms []struct {
		Name          string   `yaml:"name"`
		RoomType      string   `yaml:"room_type"`
		Floor         int      `yaml:"floor"`
		Capacity      int      `yaml:"capacity"`
		PricePerNight float64  `yaml:"price_per_night"`
		Amenities     []string `yaml:"amenities"`
	} `yaml:"rooms"`
}

func newSeedCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Load staff accounts and rooms from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read seed file: %w", err)
			}

			var seed seedFile
			if err := yaml.Unmarshal(raw, &seed); err != nil {
				return fmt.Errorf("parse seed file: %w", err)
			}

			st, err := store.Open(cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			created := 0

			for _, entry := range seed.Users {
				username, err := auth.NormalizeUsername(entry.Username)
				if err != nil {
					return fmt.Errorf("seed user %q: %w", entry.Username, err)
				}
				passwordHash, err := auth.HashPassword(entry.Password)
				if err != nil {
					return fmt.Errorf("seed user %q: %w", username, err)
				}
				user := &models.User{Username: username, PasswordHash: passwordHash, IsActive: true}
				if err := st.CreateUser(ctx, user); err != nil {
					if store.IsUniqueViolation(err) {
						fmt.Printf("user %s already exists, skipped\n", username)
						continue
					}
					return fmt.Errorf("seed user %q: %w", username, err)
				}
				created++
			}

			for _, entry := range seed.Rooms {
				room := &models.Room{
					Name:          entry.Name,
					RoomType:      entry.RoomType,
					Floor:         entry.Floor,
					Capacity:      entry.Capacity,
					PricePerNight: entry.PricePerNight,
					Amenities:     entry.Amenities,
				}
				if err := st.CreateRoom(ctx, room); err != nil {
					if store.IsUniqueViolation(err) {
						fmt.Printf("room %s already exists, skipped\n", room.Name)
						continue
					}
					return fmt.Errorf("seed room %q: %w", room.Name, err)
				}
				created++
			}

			fmt.Printf("Seeded %d records.\n", created)
			return nil
		},
	}

	return cmd
}
