package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/harrylevesque/nfcnav/internal/nav"
	"github.com/harrylevesque/nfcnav/internal/tagref"
)

func main() {
	cmd := flag.String("cmd", "encode", "Command: encode|decode|template")
	base := flag.String("base", "", "Base path prepended to encoded paths and stripped from decoded ones")
	path := flag.String("path", "", "Detail path to decode (escaped form)")

	id := flag.String("id", "", "Tag identifier")
	payload := flag.String("payload", "", "Tag payload")
	writable := flag.Bool("writable", false, "Tag is writable")
	idBytes := flag.Int("id-bytes", 0, "Identifier length in bytes")
	payloadBytes := flag.Int("payload-bytes", 0, "Payload length in bytes")
	techs := flag.String("techs", "", "Comma separated technology types, in detection order")
	maxSize := flag.Int("max-size", 0, "Tag capacity in bytes")
	tagType := flag.String("type", "", "Tag format, e.g. NDEF")
	flag.Parse()

	n := nav.NewNavigator(nav.NewRoutes(*base))

	switch *cmd {
	case "encode":
		u, err := n.DetailURL(tagref.ScannedTag{
			ID:           *id,
			Payload:      *payload,
			IsWritable:   *writable,
			IDBytes:      *idBytes,
			PayloadBytes: *payloadBytes,
			TechTypes:    splitTechs(*techs),
			MaxSize:      *maxSize,
			Type:         *tagType,
		})
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Println(u)
	case "decode":
		if *path == "" {
			fmt.Println("--path required")
			os.Exit(1)
		}
		tag, err := n.ResolveDetail(*path)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tag); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	case "template":
		fmt.Println(n.Routes().BasePath() + n.Routes().Template())
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func splitTechs(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
