package main

import (
	"os"

	"github.com/hearth-social/hearth/server/appservice"
)

func main() {
	if err := appservice.Run(); err != nil {
		os.Exit(1)
	}
}
