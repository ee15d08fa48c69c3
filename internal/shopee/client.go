package shopee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/rafaatrevisan/PinkdealTelegramBot/internal/offer"
)

const defaultEndpoint = "https://open-api.affiliate.shopee.com.br/graphql"

// Client выполняет подписанные поисковые запросы к Shopee Affiliate API.
type Client struct {
	appKey    string
	appSecret string
	endpoint  string
	client    *http.Client
	limiter   *rate.Limiter
	now       func() time.Time
}

// NewClient создаёт клиента с таймаутом 20 секунд и ограничением
// не чаще одного запроса в 2 секунды.
func NewClient(appKey, appSecret string) *Client {
	return &Client{
		appKey:    appKey,
		appSecret: appSecret,
		endpoint:  defaultEndpoint,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
		now:     time.Now,
	}
}

// Search выполняет один поисковый запрос и возвращает список товаров.
// Любой сбой (транспорт, не-2xx, конверт errors в ответе) логируется и
// возвращается пустой список: вызывающая сторона не отличает «ничего не
// нашлось» от «запрос упал». Внутренних повторов нет, повторные попытки —
// ответственность планировщика.
func (c *Client) Search(ctx context.Context, req offer.SearchRequest) []offer.Offer {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"query": buildQuery(req)})
	if err != nil {
		log.Printf("Shopee search: marshal payload: %v", err)
		return nil
	}

	timestamp := c.now().Unix()
	signature := Signature(c.appKey, c.appSecret, timestamp, payload)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		log.Printf("Shopee search: build request: %v", err)
		return nil
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization",
		fmt.Sprintf("SHA256 Credential=%s,Timestamp=%d,Signature=%s", c.appKey, timestamp, signature))

	resp, err := c.client.Do(httpReq)
	if err != nil {
		log.Printf("Shopee search: request failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("Shopee search: unexpected status %d", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Shopee search: read body: %v", err)
		return nil
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		log.Printf("Shopee search: decode response: %v", err)
		return nil
	}

	if len(sr.Errors) > 0 {
		log.Printf("Shopee API error: %s", sr.Errors[0].Message)
		return nil
	}

	nodes := sr.Data.ProductOfferV2.Nodes
	offers := make([]offer.Offer, 0, len(nodes))
	for _, n := range nodes {
		offers = append(offers, n.toOffer())
	}
	return offers
}

// buildQuery собирает GraphQL-запрос productOfferV2 с параметрами поиска.
func buildQuery(req offer.SearchRequest) string {
	params := []string{
		fmt.Sprintf("limit: %d", req.Limit),
		fmt.Sprintf("page: %d", req.Page),
		fmt.Sprintf("sortType: %d", req.SortType),
	}
	if req.Keyword != "" {
		params = append(params, fmt.Sprintf("keyword: %q", req.Keyword))
	}

	return fmt.Sprintf(
		"query { productOfferV2(%s) { "+
			"nodes { itemId productName imageUrl priceMin priceMax offerLink sales ratingStar } "+
			"pageInfo { hasNextPage } } }",
		strings.Join(params, ", "))
}

type searchResponse struct {
	Data struct {
		ProductOfferV2 struct {
			Nodes    []productNode `json:"nodes"`
			PageInfo struct {
				HasNextPage bool `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"productOfferV2"`
	} `json:"data"`
	Errors []apiError `json:"errors"`
}

type apiError struct {
	Message string `json:"message"`
}

// productNode — один товар в том виде, как его отдаёт API.
// Числовые поля приходят то числом, то строкой, поэтому парсим снисходительно:
// испорченное поле обнуляется и товар потом отсекает фильтр, а не валится батч.
type productNode struct {
	ItemID      looseString `json:"itemId"`
	ProductName string      `json:"productName"`
	ImageURL    string      `json:"imageUrl"`
	PriceMin    looseFloat  `json:"priceMin"`
	PriceMax    looseFloat  `json:"priceMax"`
	OfferLink   string      `json:"offerLink"`
	Sales       looseInt    `json:"sales"`
	RatingStar  looseFloat  `json:"ratingStar"`
}

func (n productNode) toOffer() offer.Offer {
	return offer.Offer{
		ItemID:      string(n.ItemID),
		ProductName: n.ProductName,
		ImageURL:    n.ImageURL,
		OfferLink:   n.OfferLink,
		PriceMin:    float64(n.PriceMin),
		PriceMax:    float64(n.PriceMax),
		Sales:       int(n.Sales),
		RatingStar:  float64(n.RatingStar),
	}
}

type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	*s = looseString(strings.Trim(strings.TrimSpace(string(b)), `"`))
	if *s == "null" {
		*s = ""
	}
	return nil
}

type looseFloat float64

func (f *looseFloat) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = looseFloat(v)
	return nil
}

type looseInt int

func (i *looseInt) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if raw == "" || raw == "null" {
		*i = 0
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*i = 0
		return nil
	}
	*i = looseInt(v)
	return nil
}
