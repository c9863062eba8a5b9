package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"contract-extractor/mockserver"
)

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	gin.SetMode(gin.ReleaseMode)
	srv := mockserver.New(mockserver.EchoExtractor, log)
	defer srv.Close()

	log.WithField("addr", *addr).Info("mock extraction service listening")
	if err := srv.Router().Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		srv.Close()
		os.Exit(1)
	}
}
