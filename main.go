package main

import (
	"github.com/selyo-ustp/request_service/config"
	"github.com/selyo-ustp/request_service/internal/api"
)

func main() {
	//load configuration
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
