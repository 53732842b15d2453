package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/faanross/stegokey/internal/cli"
	"github.com/faanross/stegokey/internal/scrypto"
)

func main() {
	private := flag.Int("private", 0, "Private key to derive the public key for")
	list := flag.Bool("list", false, "List every valid key pair")
	configFile := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	env, err := cli.Setup(*configFile, *verbose, nil)
	if err != nil {
		log.Fatalf("❌ Setup failed: %v", err)
	}
	group := env.Group

	fmt.Println("\n🔑 Key Pair Generator")
	fmt.Println("=" + strings.Repeat("=", 40))
	fmt.Printf("   Generator: %d  Modulus: %d\n", group.Generator(), group.Modulus())

	if *list {
		fmt.Printf("\n%-10s %-7s %s\n", "pair", "secret", "key fingerprint")
		for _, kp := range group.Pairs() {
			secret, err := group.Secret(kp)
			if err != nil {
				log.Fatalf("❌ %v", err)
			}
			fmt.Printf("%-10s %-7d %s\n", kp, secret, scrypto.Fingerprint(secret))
		}
		return
	}

	if *private == 0 {
		log.Fatal("❌ Provide -private or -list")
	}

	kp, err := group.NewKeyPair(*private)
	if err != nil {
		log.Fatalf("❌ Key error: %v", err)
	}
	secret, err := group.Secret(kp)
	if err != nil {
		log.Fatalf("❌ Key error: %v", err)
	}

	fmt.Printf("\n✅ Private: %d\n", kp.Private)
	fmt.Printf("   Public:  %d\n", kp.Public)
	fmt.Printf("   Secret:  %d (%s)\n", secret, scrypto.Fingerprint(secret))
	fmt.Printf("\n🔓 Use: -private %d -public %d\n", kp.Private, kp.Public)
}
