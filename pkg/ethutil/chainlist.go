package ethutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
)

const ChainlistURL = "https://chainlist.org/chain/%d"

// ExternalRPCs scrapes the public RPC list of a chain from its chainlist.org page.
func ExternalRPCs(ctx context.Context, client *http.Client, chainID int64) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(ChainlistURL, chainID), nil)
	if err != nil {
		return nil, err
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get chain list data, status code = %d", res.StatusCode)
	}

	bz, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return ParseChainlistPage(string(bz))
}

// ParseChainlistPage extracts the https RPC urls from the JSON page props embedded in the page.
func ParseChainlistPage(text string) ([]string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(text))
	var data string
	for stop := false; !stop; {
		switch tokenizer.Next() {
		case html.ErrorToken:
			stop = true

		case html.TextToken:
			text := tokenizer.Token().Data
			var js json.RawMessage
			if json.Unmarshal([]byte(text), &js) == nil {
				data = text
			}
		}
	}

	if data == "" {
		return nil, errors.New("no chain data in page")
	}

	type result struct {
		Props struct {
			PageProps struct {
				Chain struct {
					Name string `json:"name"`
					RPC  []struct {
						URL string `json:"url"`
					} `json:"rpc"`
				} `json:"chain"`
			} `json:"pageProps"`
		} `json:"props"`
	}

	r := result{}
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, err
	}

	ret := make([]string, 0, len(r.Props.PageProps.Chain.RPC))
	for _, rpc := range r.Props.PageProps.Chain.RPC {
		// Websocket and templated (${API_KEY}) endpoints cannot be dialed as is.
		if strings.HasPrefix(rpc.URL, "https://") && !strings.Contains(rpc.URL, "${") {
			ret = append(ret, rpc.URL)
		}
	}

	return ret, nil
}
