package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/PatricioVargasR/Sistema-SIRSE/config"
	"github.com/PatricioVargasR/Sistema-SIRSE/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {
	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	db, err := config.Connect()
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	if err := config.Migrations(db); err != nil {
		log.Fatalf("could not run migrations: %v", err)
	}
	if err := config.SeedReferenceData(db); err != nil {
		log.Fatalf("could not seed reference data: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	handler := routes.RegisterRoutes(db)
	log.Println("Server starting at port", port)
	log.Fatal(http.ListenAndServe(":"+port, enableCORS(handler)))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
