package main

import (
	"log"

	"github.com/lintang-b-s/campsite-explorer/pkg/di"
)

func main() {
	server, cleanup, err := di.InitializeCampsiteService()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	if err := server.Wait(); err != nil {
		server.Log.Error(err.Error())
	}
}
