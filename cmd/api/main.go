package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/tom-gerken/ecommerce-backend/internal/app"
)

func main() {
	_ = godotenv.Load()

	a := app.New()
	if err := a.Run(); err != nil {
		logrus.Fatal(err)
	}
}
