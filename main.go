package main

import (
	"time"

	"github.com/hirewire/hirewire-backend/hirewire-session/cmd"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/util"
)

func main() {
	currentTime := time.Now()
	data := map[string]interface{}{
		"startTime":   currentTime.Format("January 02, 2006 - 03:04:05 PM MST"),
		"message":     "Starting session backend server . . .",
		"codeVersion": "1.0.3",
		"repo":        "hirewire-session",
	}
	util.PrettyPrint(data)
	cmd.New().Execute()
}
