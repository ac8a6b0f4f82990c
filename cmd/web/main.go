package main

import "archway_backend/internal/app"

func main() {
	app.Run()
}
