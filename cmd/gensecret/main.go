package main

import (
	"flag"
	"fmt"
	"log"

	"eloquentlog/pkg/crypto"

	"github.com/joho/godotenv"
)

var purposes = []string{"ACTIVATION", "AUTHENTICATION", "AUTHORIZATION", "VERIFICATION"}

func main() {
	var (
		size = flag.Int("size", 64, "每个密钥的字节数")
		out  = flag.String("out", "", "写入的 .env 文件，为空时输出到标准输出")
	)
	flag.Parse()

	env := make(map[string]string, len(purposes))
	for _, purpose := range purposes {
		secret, err := crypto.GenerateSecret(*size)
		if err != nil {
			log.Fatalf("Failed to generate %s secret: %v", purpose, err)
		}
		env[fmt.Sprintf("ELOQUENTLOG_TOKEN_%s_SECRET", purpose)] = secret
	}

	if *out == "" {
		content, err := godotenv.Marshal(env)
		if err != nil {
			log.Fatalf("Failed to encode secrets: %v", err)
		}
		fmt.Println(content)
		return
	}

	if err := godotenv.Write(env, *out); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d secrets to %s", len(env), *out)
}
