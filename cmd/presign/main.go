// Command presign prints a presigned URL for a single object. Credentials and
// the target bucket come from the environment; the object key is the sole
// positional argument.
//
//	PRESIGN_BUCKET=bucket PRESIGN_ENDPOINT=123.r2.cloudflarestorage.com \
//	PRESIGN_ACCESS_KEY_ID=... PRESIGN_SECRET_ACCESS_KEY=... \
//	presign -expires 3600 file.mp4
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rs/zerolog"

	"github.com/objstore/presign"
)

type Config struct {
	Bucket          string `env:"PRESIGN_BUCKET" env-required:"true"`
	Endpoint        string `env:"PRESIGN_ENDPOINT" env-required:"true"`
	Region          string `env:"PRESIGN_REGION" env-default:"auto"`
	AccessKeyID     string `env:"PRESIGN_ACCESS_KEY_ID" env-required:"true"`
	SecretAccessKey string `env:"PRESIGN_SECRET_ACCESS_KEY" env-required:"true"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	method := flag.String("method", presign.DefaultMethod, "HTTP method the URL authorizes")
	expires := flag.Int("expires", presign.DefaultExpiresIn, "validity window in seconds")
	flag.Parse()

	if flag.NArg() != 1 {
		logger.Fatal().Msg("usage: presign [-method GET] [-expires 84600] <object-key>")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("Failed to read configuration")
	}

	r := presign.NewRequest(cfg.Bucket, cfg.Endpoint, flag.Arg(0))
	r.Region = cfg.Region
	r.AccessKeyID = cfg.AccessKeyID
	r.SecretAccessKey = cfg.SecretAccessKey
	r.Method = *method
	r.ExpiresIn = *expires

	url, err := presign.SignURL(r)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to sign URL")
	}

	fmt.Println(url)
}
