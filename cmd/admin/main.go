package main

import (
	"context"
	"flag"
	"fmt"
	"seotda-server/internal/jwt"
	"seotda-server/pkg/model"
	"seotda-server/pkg/token"

	"github.com/sirupsen/logrus"
)

var command = flag.String("c", "token", "specifies the command (token, room, secret)")
var playerID = flag.String("player", "", "the player id to sign a token for")
var roomID = flag.String("room", "", "the room id to create")
var roomName = flag.String("name", "", "the room's display name")
var capacity = flag.Int("capacity", model.DefaultCapacity, "the number of players the room seats")

func main() {
	flag.Parse()

	switch *command {
	case "token":
		if *playerID == "" {
			logrus.Fatal("-player is required")
		}

		jwt.LoadSecret()
		token, err := jwt.Sign(*playerID)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		fmt.Println(token)
	case "room":
		if *roomID == "" {
			logrus.Fatal("-room is required")
		}

		store := model.NewRoomStore(nil)
		if err := store.CreateRoom(context.Background(), *roomID, *roomName, *capacity); err != nil {
			logrus.WithError(err).Fatal("could not create room")
		}

		fmt.Printf("Room %s seats %d players\n", *roomID, *capacity)
	case "secret":
		secret, err := token.Generate(48)
		if err != nil {
			logrus.WithError(err).Fatal("could not generate secret")
		}

		fmt.Println(secret)
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}
