package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/researchhub/researchhub/auth"
	"github.com/researchhub/researchhub/bleve"
	"github.com/researchhub/researchhub/bolt"
	"github.com/researchhub/researchhub/categories"
	"github.com/researchhub/researchhub/library"
	"github.com/researchhub/researchhub/log"
	"github.com/researchhub/researchhub/moderation"
	"github.com/researchhub/researchhub/mysql"
	"github.com/researchhub/researchhub/notifications"
	"github.com/researchhub/researchhub/papers"
	"github.com/researchhub/researchhub/storage"
	"github.com/researchhub/researchhub/users"
)

var (
	// flags
	verbose bool
	env     string

	// logger
	logger log.Logger

	// auth
	jwtKey        []byte
	authenticator *users.Authenticator

	// drivers
	boltDriver  *bolt.Driver
	mysqlDriver *mysql.Driver
	paperIndex  *bleve.PaperIndex

	// stores
	userStore    *bolt.UserStore
	profileStore *bolt.ProfileStore

	// services
	categoryService     *categories.Service
	notificationService *notifications.Service
	moderationService   *moderation.Service
	paperService        *papers.Service
	libraryService      *library.Service
	accountService      *auth.Service

	// http
	httpAddr string
)

type Configuration struct {
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	MySQL struct {
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		Database string `toml:"database"`
	} `toml:"mysql"`
	Storage struct {
		Dir string `toml:"dir"`
	} `toml:"storage"`
	HTTP struct {
		Addr string `toml:"addr"`
	} `toml:"http"`
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose mode")
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
}

var RootCmd = cobra.Command{
	Use:   "researchhub",
	Short: "",
	Long:  "",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load configuration
		cfgData, err := ioutil.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			fmt.Println("error reading configuration:", err)
			return
		}

		var cfg Configuration
		err = toml.Unmarshal(cfgData, &cfg)
		if err != nil {
			fmt.Println("error unmarshalling configuration:", err)
			return
		}

		// Create logger
		logger = log.New(env)

		// Load signing key
		keyData, err := ioutil.ReadFile(cfg.Auth.Key)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key struct {
			Key string `json:"k"`
		}
		err = json.Unmarshal(keyData, &key)
		if err != nil {
			logger.Fatal("could not read key file:", err)
		}
		jwtKey = []byte(key.Key)

		// Create drivers
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(cfg.Bolt.Store); err != nil {
			logger.Fatal("could not open bolt:", err)
		}

		mysqlDriver, err = mysql.NewDriver(
			cfg.MySQL.Host, cfg.MySQL.Port,
			cfg.MySQL.Username, cfg.MySQL.Password,
			cfg.MySQL.Database,
		)
		if err != nil {
			logger.Fatal("could not connect to mysql:", err)
		}

		paperIndex = &bleve.PaperIndex{}
		if err := paperIndex.Open(cfg.Bleve.Store); err != nil {
			logger.Fatal("could not open bleve:", err)
		}

		// Create stores
		userStore = &bolt.UserStore{Driver: boltDriver}
		profileStore = &bolt.ProfileStore{Driver: boltDriver}
		paperStore := mysql.NewPaperRepository(mysqlDriver)
		categoryStore := mysql.NewCategoryRepository(mysqlDriver)
		commentStore := mysql.NewCommentRepository(mysqlDriver)
		notificationStore := mysql.NewNotificationRepository(mysqlDriver)
		libraryStore := mysql.NewLibraryRepository(mysqlDriver)
		moderationStore := mysql.NewModerationStore(mysqlDriver)

		fileStore, err := storage.NewLocalStore(cfg.Storage.Dir)
		if err != nil {
			logger.Fatal("could not open storage:", err)
		}

		// Create services
		authenticator = users.NewAuthenticator(userStore)
		categoryService = categories.NewService(categoryStore, logger)
		notificationService = notifications.NewService(notificationStore, userStore, logger)
		moderationService = moderation.NewService(
			paperStore, commentStore, userStore,
			moderationStore, paperIndex, logger,
		)
		paperService = papers.NewService(
			paperStore, paperIndex, categoryStore,
			userStore, profileStore, commentStore,
			libraryStore, fileStore, notificationService, logger,
		)
		libraryService = library.NewService(libraryStore, paperStore, paperService, logger)
		accountService = auth.NewService(
			userStore, profileStore, categoryStore,
			paperStore, commentStore, notificationStore,
			paperService, notificationService, logger,
		)

		httpAddr = cfg.HTTP.Addr
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		boltDriver.Close()
		mysqlDriver.Close()
		paperIndex.Close()
	},
}
