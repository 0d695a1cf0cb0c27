// modelcheck lists the models an OpenAI API credential can reach and
// reports whether a target image model is among them.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	target := flag.String("model", "dall-e-3", "model to check access for")
	flag.Parse()

	_ = godotenv.Load()
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	ids, err := listModels(apiKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list models: %v\n", err)
		os.Exit(1)
	}

	sort.Strings(ids)
	fmt.Println("Models accessible with this API key:")
	accessible := false
	for _, id := range ids {
		fmt.Println(" -", id)
		if id == *target {
			accessible = true
		}
	}

	if accessible {
		fmt.Printf("access to %q: OK\n", *target)
		return
	}
	fmt.Printf("access to %q: DENIED\n", *target)
	os.Exit(1)
}

func listModels(apiKey string) ([]string, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequest(http.MethodGet, "https://api.openai.com/v1/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}

	var response struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(response.Data))
	for _, m := range response.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
