package main

import (
	_ "planejao/docs"
	"planejao/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Planejão API
// @version         1.0
// @description     Project portfolio service: projects, members, status board and reports.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.basic BasicAuth

func main() {
	routes.Run()
}
