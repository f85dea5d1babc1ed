// config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
)

var (
	Port           string
	MongoURI       string
	DBName         string
	JWTKey         []byte
	Production     bool
	AllowedOrigins []string
)

func LoadConfig() {
	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "5000"
	}

	MongoURI = os.Getenv("MONGODB_URI")
	if MongoURI == "" {
		// Atlas-style URI assembled from separate credentials
		user := os.Getenv("DB_USER")
		pass := os.Getenv("DB_PASS")
		host := os.Getenv("DB_HOST")
		if user != "" && host != "" {
			MongoURI = fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority", user, pass, host)
		} else {
			MongoURI = "mongodb://localhost:27017"
		}
	}

	DBName = os.Getenv("DB_NAME")
	if DBName == "" {
		DBName = "MangeMate"
	}

	JWTKey = []byte(os.Getenv("ACCESS_TOKEN_SECRET"))
	if len(JWTKey) == 0 {
		JWTKey = []byte("secret")
	}

	Production = os.Getenv("NODE_ENV") == "production"

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:5174"
	}
	AllowedOrigins = nil
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			AllowedOrigins = append(AllowedOrigins, o)
		}
	}
}
