// Command thermoprint renders receipt documents from the command line:
// to raw ESC/POS bytes, to a preview PNG, or straight to a printer via
// a running thermoprintd.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/printcore/thermoprint/internal/preview"
	"github.com/printcore/thermoprint/pkg/template"
)

const defaultServerURL = "http://localhost:8330"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "render":
		err = runRender(os.Args[2:])
	case "preview":
		err = runPreview(os.Args[2:])
	case "print":
		err = runPrint(os.Args[2:])
	case "printers":
		err = runPrinters(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `thermoprint - receipt document renderer

Usage:
  thermoprint render  -in doc.json -out receipt.bin
  thermoprint preview -in doc.json -out receipt.png
  thermoprint print   -in doc.json -device <id> [-server url]
  thermoprint printers [-server url]

render writes the raw ESC/POS byte stream; pipe it to a device with
'cat receipt.bin > /dev/usb/lp0' for a quick test. preview writes a PNG
approximation of the printout. print and printers talk to a running
thermoprintd (default `+defaultServerURL+`).
`)
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	in := fs.String("in", "", "input document JSON (default stdin)")
	out := fs.String("out", "", "output file (default stdout)")
	fs.Parse(args)

	src, err := readInput(*in)
	if err != nil {
		return err
	}

	data, err := template.Render(src)
	if err != nil {
		return err
	}
	return writeOutput(*out, data)
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	in := fs.String("in", "", "input document JSON (default stdin)")
	out := fs.String("out", "preview.png", "output PNG file")
	fs.Parse(args)

	src, err := readInput(*in)
	if err != nil {
		return err
	}

	doc, err := template.Parse(src)
	if err != nil {
		return err
	}
	png, err := preview.RenderPNG(doc)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *out, err)
	}
	fmt.Printf("Preview written to %s\n", *out)
	return nil
}

func runPrint(args []string) error {
	fs := flag.NewFlagSet("print", flag.ExitOnError)
	in := fs.String("in", "", "input document JSON (default stdin)")
	device := fs.String("device", "", "device ID (required)")
	server := fs.String("server", defaultServerURL, "thermoprintd URL")
	fs.Parse(args)

	if *device == "" {
		return fmt.Errorf("-device is required; list devices with 'thermoprint printers'")
	}

	src, err := readInput(*in)
	if err != nil {
		return err
	}
	// Validate locally for a better error than a round trip.
	if _, err := template.Parse(src); err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]json.RawMessage{
		"device_id": json.RawMessage(fmt.Sprintf("%q", *device)),
		"document":  json.RawMessage(src),
	})
	if err != nil {
		return err
	}

	resp, err := http.Post(*server+"/print", "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contact thermoprintd: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("print failed (HTTP %d): %s", resp.StatusCode, body)
	}

	var result struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	fmt.Printf("Queued as job %s\n", result.JobID)
	return nil
}

func runPrinters(args []string) error {
	fs := flag.NewFlagSet("printers", flag.ExitOnError)
	server := fs.String("server", defaultServerURL, "thermoprintd URL")
	fs.Parse(args)

	resp, err := http.Get(*server + "/printers")
	if err != nil {
		return fmt.Errorf("contact thermoprintd: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Printers []struct {
			ID          string `json:"id"`
			Type        string `json:"type"`
			Description string `json:"description"`
			Name        string `json:"name"`
		} `json:"printers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(result.Printers) == 0 {
		fmt.Println("No printers found")
		return nil
	}
	for _, p := range result.Printers {
		name := p.Description
		if p.Name != "" {
			name = p.Name
		}
		fmt.Printf("%s  [%s]  %s\n", p.ID, p.Type, name)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(data), path)
	return nil
}
