package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Alia5/serialpad/script"
)

// NewWebhook posts notifications as {"message": "..."} JSON to url.
func NewWebhook(url string) script.Notifier {
	return script.NotifierFunc(func(ctx context.Context, message string) error {
		body, err := json.Marshal(map[string]string{"message": message})
		if err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return fmt.Errorf("webhook returned %s", resp.Status)
		}
		return nil
	})
}
