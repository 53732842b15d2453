package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/faanross/stegokey/internal/cli"
	"github.com/faanross/stegokey/internal/engine"
	"github.com/faanross/stegokey/internal/imageio"
	"github.com/faanross/stegokey/internal/stego"
)

func main() {
	// Command line arguments
	inputFile := flag.String("input", "", "Path to message file")
	text := flag.String("text", "", "Inline message (instead of -input)")
	carrierFile := flag.String("carrier", "", "Path to carrier image (PNG or BMP)")
	outputFile := flag.String("output", "stego.png", "Output image (.png or .bmp)")
	private := flag.Int("private", 0, "Private key (prompt if not provided)")
	public := flag.Int("public", -1, "Public key (derived from private if not provided)")
	kindFlag := flag.String("kind", "auto", "Message kind: auto, text or binary")
	compress := flag.Bool("compress", false, "Compress the message when it helps")
	configFile := flag.String("config", "", "YAML config file")
	analyze := flag.Bool("analyze", false, "Show LSB analysis of the result")
	verbose := flag.Bool("verbose", false, "Debug logging")

	flag.Parse()

	// Validate input
	if *carrierFile == "" {
		log.Fatal("❌ Please provide a carrier image with -carrier flag")
	}
	if (*inputFile == "") == (*text == "") {
		log.Fatal("❌ Provide exactly one of -input or -text")
	}

	var compressOverride *bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "compress" {
			compressOverride = compress
		}
	})

	env, err := cli.Setup(*configFile, *verbose, compressOverride)
	if err != nil {
		log.Fatalf("❌ Setup failed: %v", err)
	}

	fmt.Println("\n🔐 Keyed LSB Steganography Encoder")
	fmt.Println("=" + strings.Repeat("=", 40))

	// Read message
	message := []byte(*text)
	if *inputFile != "" {
		message, err = os.ReadFile(*inputFile)
		if err != nil {
			log.Fatalf("❌ Error reading file: %v", err)
		}
		fmt.Printf("\n📄 Input file: %s (%d bytes)\n", *inputFile, len(message))
	}

	kind, err := parseKind(*kindFlag, message)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// Load carrier
	carrier, format, err := imageio.Load(*carrierFile)
	if err != nil {
		log.Fatalf("❌ Error loading carrier: %v", err)
	}

	bounds := carrier.Bounds()
	fmt.Printf("\n📷 Carrier loaded:\n")
	fmt.Printf("   File: %s\n", *carrierFile)
	fmt.Printf("   Format: %s\n", format)
	fmt.Printf("   Dimensions: %dx%d\n", bounds.Dx(), bounds.Dy())
	fmt.Printf("   Capacity: %d bytes\n", env.Engine.Capacity(carrier))

	kp, err := env.KeyPair(*private, *public)
	if err != nil {
		log.Fatalf("❌ Key error: %v", err)
	}

	// Embed
	img, err := env.Engine.Encode(message, kind, carrier, kp)
	if err != nil {
		log.Fatalf("❌ Encoding failed: %v", err)
	}

	if *analyze {
		rep, err := stego.Analyze(img)
		if err != nil {
			log.Fatalf("❌ Analysis failed: %v", err)
		}
		printReport(rep)
	}

	if err := imageio.Save(*outputFile, img); err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("\n✅ Message hidden!\n")
	fmt.Printf("   Kind: %s\n", kind)
	fmt.Printf("   Public key: %d\n", kp.Public)
	fmt.Printf("   Output: %s\n", *outputFile)
	fmt.Printf("\n🔓 To decode: use the decoder with the same key pair\n")
}

func parseKind(value string, message []byte) (engine.Kind, error) {
	switch strings.ToLower(value) {
	case "auto":
		return engine.ClassifyKind(message), nil
	case "text":
		return engine.KindText, nil
	case "binary":
		return engine.KindBinary, nil
	default:
		return 0, fmt.Errorf("unknown kind %q", value)
	}
}

func printReport(rep stego.Report) {
	fmt.Printf("\n🔒 Security Analysis:\n")
	fmt.Printf("   LSB Entropy: %.4f bits (max: 8.0)\n", rep.Entropy)
	fmt.Printf("   LSB Distribution: %.1f%% zeros, %.1f%% ones\n",
		(1-rep.OnesRatio())*100, rep.OnesRatio()*100)

	if rep.LooksRandom() {
		fmt.Printf("   ⚠️  LSB plane looks random - whole-image embedding is detectable\n")
	} else {
		fmt.Printf("   ✅ LSB plane still follows the carrier\n")
	}
}
