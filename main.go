package main

import (
	"fmt"
	"godict/config"
	"godict/database"
	"godict/lib/logger"
	"godict/server"
	"godict/storage"
	"godict/tcp"
	"os"
)

const configFilename = "godict.conf"

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func main() {
	if fileExists(configFilename) {
		config.SetupConfigProperties(configFilename)
	}
	if err := logger.Setup(&logger.Settings{
		Path:       config.Properties.LogDir,
		Name:       "godict",
		Ext:        "log",
		TimeFormat: "2006-01-02",
	}); err != nil {
		logger.Warn(err)
	}
	db := database.NewDB(config.Properties.DictSize, storage.NewMemStore())
	err := tcp.ListenAndServeWithSignal(&tcp.Config{
		Address:    fmt.Sprintf("%s:%d", config.Properties.Bind, config.Properties.Port),
		MaxConnect: uint32(config.Properties.MaxConnect),
	}, server.NewHandler(db))
	if err != nil {
		logger.Fatal(err)
	}
}
