package main

import "storehouse/internal/app"

// @title           storehouse API
// @version         1.0
// @description     Inventory backend with verified user signup.
// @BasePath        /
func main() {
	app.Run()
}
