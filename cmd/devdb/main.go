package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/openimagingdata/radelement-api/internal/testdb"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var withAPI bool
	flag.BoolVar(&withAPI, "api", false, "also build and run the API container")
	flag.Parse()

	usage := `
Run a containerized MySQL (and optionally the API) for local development,
with environment variables from a .env file.

Usage:

devdb [-h] [-api] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  devdb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var stack *testdb.Containers
	go func() {
		var err error
		stack, err = testdb.CreateStack(nil, withAPI)
		if err != nil {
			log.Fatalf("Failed to create containers: %v\n", err)
		}
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating containers...\n", sig)
	if stack != nil {
		stack.Terminate(nil)
	}
}
