package main

import (
	"github.com/spf13/cobra"

	"github.com/researchhub/researchhub/auth"
	"github.com/researchhub/researchhub/categories"
	"github.com/researchhub/researchhub/gin"
	"github.com/researchhub/researchhub/library"
	"github.com/researchhub/researchhub/moderation"
	"github.com/researchhub/researchhub/notifications"
	"github.com/researchhub/researchhub/papers"
)

func init() {
	RootCmd.AddCommand(&ServeCommand)
	RootCmd.AddCommand(&MigrateCommand)
}

var ServeCommand = cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		if err := categoryService.Seed(); err != nil {
			logger.Fatal("could not seed categories:", err)
		}

		srv := gin.New()
		categories.RegisterHTTPRoutes(srv, categoryService)
		papers.RegisterHTTPRoutes(srv, paperService, authenticator, jwtKey)
		notifications.RegisterHTTPRoutes(srv, notificationService, authenticator, jwtKey)
		moderation.RegisterHTTPRoutes(srv, moderationService, authenticator, jwtKey)
		library.RegisterHTTPRoutes(srv, libraryService, authenticator, jwtKey)
		auth.RegisterHTTPRoutes(srv, accountService, authenticator, jwtKey)

		logger.Print("server started, listening on", httpAddr)
		if err := srv.Run(httpAddr); err != nil {
			logger.Fatal("server stopped:", err)
		}
	},
}

var MigrateCommand = cobra.Command{
	Use:   "migrate",
	Short: "Create the mysql tables",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		if err := mysqlDriver.Migrate(); err != nil {
			logger.Fatal("could not migrate:", err)
		}
		logger.Print("migration done")
	},
}
