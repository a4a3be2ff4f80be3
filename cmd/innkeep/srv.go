package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"innkeep/internal/auth"
	"innkeep/internal/blobstore"
	"innkeep/internal/config"
	"innkeep/internal/server"
	"innkeep/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the innkeep API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.Database.DSN == "" {
				return fmt.Errorf("database dsn is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database")
			st, err := store.Open(cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := blobstore.NewMinioStore(cmd.Context(), blobstore.MinioConfig{
				Endpoint:  cfg.ObjectStore.Endpoint,
				AccessKey: cfg.ObjectStore.AccessKey,
				SecretKey: cfg.ObjectStore.SecretKey,
				Bucket:    cfg.ObjectStore.Bucket,
				Region:    cfg.ObjectStore.Region,
				UseSSL:    cfg.ObjectStore.UseSSL,
			})
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
			if err != nil {
				return err
			}

			srv := server.New(addr, st, bs, tokens, logger, server.Options{
				MaxUploadBytes:     cfg.Uploads.MaxUploadBytes,
				MultipartMaxMemory: cfg.Uploads.MultipartMaxMemory,
			})
			return srv.ListenAndServe()
		},
	}
}
