package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/researchhub/researchhub"
	"github.com/researchhub/researchhub/jwt"
)

func init() {
	UserCommand.AddCommand(&UserAllCommand)
	UserCommand.AddCommand(&UserUpsertCommand)
	UserCommand.AddCommand(&TokenCommand)
	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("user wants 1 argument: the id of the user")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("error converting user id:", err)
		}

		account, err := accountService.Get(id)
		if err != nil {
			logger.Fatal("error retrieving user:", err)
		}

		data, err := json.Marshal(account)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(string(data))
	},
}

var UserAllCommand = cobra.Command{
	Use:   "all",
	Short: "",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := accountService.List()
		if err != nil {
			logger.Fatal("error listing users:", err)
		}

		for _, user := range users {
			data, err := json.Marshal(user)
			if err != nil {
				logger.Fatal(err)
			}
			logger.Print(string(data))
		}
	},
}

var UserUpsertCommand = cobra.Command{
	Use:   "upsert",
	Short: "",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("user upsert wants 1 argument: the json representation of the user")
		}

		var user researchhub.User
		if err := json.Unmarshal([]byte(args[0]), &user); err != nil {
			logger.Fatal("error decoding request:", err)
		}

		if err := userStore.Upsert(&user); err != nil {
			logger.Fatal("error upserting user:", err)
		}

		data, err := json.Marshal(user)
		if err != nil {
			logger.Fatal(err)
		}
		logger.Print(string(data))
	},
}

var TokenCommand = cobra.Command{
	Use:   "token",
	Short: "",
	Long:  "",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			logger.Fatal("token wants 1 argument: the id of the user")
		}

		id, err := strconv.Atoi(args[0])
		if err != nil {
			logger.Fatal("error converting user id:", err)
		}

		user, err := userStore.Get(id)
		if err != nil {
			logger.Fatal("error retrieving user:", err)
		}

		encoder := jwt.NewEncodeDecoder(jwtKey)
		token, err := encoder.Encode(user.ID, user.IsAdmin)
		if err != nil {
			logger.Fatal("error encoding token:", err)
		}
		logger.Print(token)
	},
}
