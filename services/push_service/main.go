package push_service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

const (
	BatchSize = 100

	StatusOK                 = "ok"
	StatusError              = "error"
	ErrorDeviceNotRegistered = "DeviceNotRegistered"
)

type Message struct {
	To    string                 `json:"to"`
	Title string                 `json:"title,omitempty"`
	Body  string                 `json:"body,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Sound string                 `json:"sound,omitempty"`
}

// Ticket is Expo's answer for one message, in the order messages were sent.
type Ticket struct {
	To      string
	Status  string
	Message string
	Error   string
}

func (t Ticket) DeviceNotRegistered() bool {
	return t.Status == StatusError && t.Error == ErrorDeviceNotRegistered
}

type Client struct {
	URL        string
	HTTPClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts messages in batches of BatchSize and returns one ticket per message.
func (c *Client) Send(ctx context.Context, messages []Message) ([]Ticket, error) {
	tickets := make([]Ticket, 0, len(messages))

	for start := 0; start < len(messages); start += BatchSize {
		end := start + BatchSize
		if end > len(messages) {
			end = len(messages)
		}

		batch, err := c.send(ctx, messages[start:end])
		if err != nil {
			return tickets, err
		}
		tickets = append(tickets, batch...)
	}

	return tickets, nil
}

func (c *Client) send(ctx context.Context, messages []Message) ([]Ticket, error) {
	payload, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("expo push: unexpected status %d: %s", resp.StatusCode, gjson.GetBytes(body, "errors.0.message").String())
	}

	data := gjson.GetBytes(body, "data").Array()
	tickets := make([]Ticket, len(messages))
	for i, message := range messages {
		tickets[i] = Ticket{To: message.To, Status: StatusError, Message: "missing ticket"}
		if i >= len(data) {
			continue
		}

		tickets[i].Status = data[i].Get("status").String()
		tickets[i].Message = data[i].Get("message").String()
		tickets[i].Error = data[i].Get("details.error").String()
	}

	return tickets, nil
}
