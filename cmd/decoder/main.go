package main

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/faanross/stegokey/internal/cli"
	"github.com/faanross/stegokey/internal/engine"
	"github.com/faanross/stegokey/internal/imageio"
	"github.com/faanross/stegokey/internal/stego"
)

func main() {
	// Command line arguments
	inputFile := flag.String("input", "", "Path to stego image")
	outputFile := flag.String("output", "", "Save extracted message to file")
	private := flag.Int("private", 0, "Private key (prompt if not provided)")
	public := flag.Int("public", -1, "Public key (derived from private if not provided)")
	analyze := flag.Bool("analyze", false, "Perform LSB analysis only")
	sweep := flag.Bool("sweep", false, "Try every valid key pair")
	configFile := flag.String("config", "", "YAML config file")
	verbose := flag.Bool("verbose", false, "Debug logging and full message output")

	flag.Parse()

	// Validate input
	if *inputFile == "" {
		log.Fatal("❌ Please provide input image with -input flag")
	}

	env, err := cli.Setup(*configFile, *verbose, nil)
	if err != nil {
		log.Fatalf("❌ Setup failed: %v", err)
	}

	fmt.Println("\n🔓 Keyed LSB Steganography Decoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	img, format, err := imageio.Load(*inputFile)
	if err != nil {
		log.Fatalf("❌ Error loading image: %v", err)
	}

	bounds := img.Bounds()
	fmt.Printf("\n📷 Image loaded:\n")
	fmt.Printf("   File: %s\n", *inputFile)
	fmt.Printf("   Format: %s\n", format)
	fmt.Printf("   Dimensions: %dx%d\n", bounds.Dx(), bounds.Dy())

	// Analysis mode
	if *analyze {
		rep, err := stego.Analyze(img)
		if err != nil {
			log.Fatalf("❌ Analysis failed: %v", err)
		}
		printReport(rep)
		return
	}

	// Sweep mode
	if *sweep {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		candidates, err := env.Engine.Sweep(ctx, img)
		if err != nil {
			log.Fatalf("❌ Sweep failed: %v", err)
		}
		printCandidates(candidates)
		return
	}

	kp, err := env.KeyPair(*private, *public)
	if err != nil {
		log.Fatalf("❌ Key error: %v", err)
	}

	result, err := env.Engine.Decode(img, kp)
	if err != nil {
		log.Fatalf("❌ Extraction failed: %v", err)
	}

	fmt.Printf("\n✅ MESSAGE EXTRACTED\n")
	fmt.Printf("   Kind: %s\n", result.Kind)
	fmt.Printf("   Size: %d bytes\n", len(result.Message))
	fmt.Printf("   Compression: %v\n", result.Compressed)

	// Save to file if requested
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, result.Message, 0644); err != nil {
			log.Fatalf("❌ Error saving output: %v", err)
		}
		fmt.Printf("\n💾 Message saved to: %s\n", *outputFile)
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println(render(result.Kind, result.Message, *verbose))
	fmt.Println(strings.Repeat("=", 60))
}

// render prints text as is and binary as base64, previewing long messages
func render(kind engine.Kind, message []byte, full bool) string {
	out := string(message)
	if kind == engine.KindBinary {
		out = base64.StdEncoding.EncodeToString(message)
	}
	if full || len(out) <= 500 {
		return out
	}
	return fmt.Sprintf("%s\n... [%d more characters] ...\n%s\n\n(Use -verbose flag to see full message)",
		out[:200], len(out)-400, out[len(out)-200:])
}

func printReport(rep stego.Report) {
	fmt.Printf("\n🔍 LSB Analysis:\n")
	fmt.Printf("   Capacity: %d bits\n", rep.CapacityBits)
	fmt.Printf("   LSB Entropy: %.4f bits (max: 8.0)\n", rep.Entropy)
	fmt.Printf("   LSB Distribution: %.1f%% zeros, %.1f%% ones\n",
		(1-rep.OnesRatio())*100, rep.OnesRatio()*100)

	if rep.Header != nil {
		fmt.Printf("   📦 Frame header: %d bytes, %s, compressed=%v\n",
			rep.Header.Length, rep.Header.Kind, rep.Header.Compressed)
	} else {
		fmt.Printf("   No frame header found\n")
	}

	if rep.LooksRandom() {
		fmt.Printf("   ⚠️  LSB plane looks random\n")
	}
}

func printCandidates(candidates []engine.Candidate) {
	fmt.Printf("\n🔑 Sweep over %d key pairs:\n", len(candidates))
	found := 0
	for _, c := range candidates {
		if !c.Plausible() {
			continue
		}
		found++
		preview := render(c.Kind, c.Message, false)
		if len(preview) > 60 {
			preview = preview[:60] + "..."
		}
		fmt.Printf("   %-9s secret=%-2d %q\n", c.Pair, c.Secret, preview)
	}
	if found == 0 {
		fmt.Printf("   No plausible message\n")
	}
}
