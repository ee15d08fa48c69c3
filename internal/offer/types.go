package offer

// Offer описывает товар сразу после получения из поисковой выдачи Shopee.
// Структура неизменяема в рамках одного цикла; в кэш отправленных попадает
// только ItemID выбранного товара.
type Offer struct {
	ItemID      string  `json:"item_id"`
	ProductName string  `json:"product_name"`
	ImageURL    string  `json:"image_url"`
	OfferLink   string  `json:"offer_link"`
	PriceMin    float64 `json:"price_min"`
	PriceMax    float64 `json:"price_max"`
	Sales       int     `json:"sales"`
	RatingStar  float64 `json:"rating_star"`
}

// Режимы сортировки поисковой выдачи Shopee Affiliate API.
const (
	SortBySales      = 2
	SortByCommission = 5
)

// SearchRequest описывает один поисковый запрос к Shopee.
// Формируется заново на каждый цикл, состояния не хранит.
type SearchRequest struct {
	Keyword  string
	SortType int
	Page     int
	Limit    int
}
