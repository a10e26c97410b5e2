package api

// StoreLink B2B endpoint paths. Each constant doubles as the endpoint half
// of the rate limiter key, so two methods hitting the same path share one
// budget.
const (
	OrderCreateEndpoint  = "/b2b/v1/orders/create"
	OrderUpdateEndpoint  = "/b2b/v1/orders/update"
	OrderCancelEndpoint  = "/b2b/v1/orders/cancel"
	OrderDetailEndpoint  = "/b2b/v1/orders/get"
	OrdersStateEndpoint  = "/b2b/v1/orders/state"
	OrdersEventsEndpoint = "/b2b/v1/orders/events/query"

	ReceiptGetEndpoint    = "/b2b/v1/receipts/get"
	ReceiptUploadEndpoint = "/b2b/v1/receipts/documents/upload"

	PickingSetStateEndpoint  = "/b2b/v1/wms/picking/set-state"
	DeliverySetStateEndpoint = "/b2b/v1/logistics/delivery/set-state"

	PriceGetEndpoint = "/b2b/v1/prices/get"
	PriceSetEndpoint = "/b2b/v1/prices/set"

	PriceListGetEndpoint    = "/b2b/v1/pricelists/get"
	PriceListCreateEndpoint = "/b2b/v1/pricelists/create"
	PriceListQueryEndpoint  = "/b2b/v1/pricelists/query"

	ProductQueryEndpoint       = "/b2b/v1/products/query"
	ProductCreateEndpoint      = "/b2b/v1/products/create"
	ProductMediaCreateEndpoint = "/b2b/v1/products/media/create"

	ProductVatGetEndpoint    = "/b2b/v1/products-vat/get"
	ProductVatUpdateEndpoint = "/b2b/v1/products-vat/update"
	ProductVatCreateEndpoint = "/b2b/v1/products-vat/create"

	StorePriceListLinkCreateEndpoint = "/b2b/v1/store-pricelist-links/create"
	StorePriceListLinkGetEndpoint    = "/b2b/v1/store-pricelist-links/get"

	DiscountsCreateEndpoint = "/b2b/v1/discounts/create"

	StockUpdateEndpoint     = "/b2b/v1/stocks/update"
	StockInitializeEndpoint = "/b2b/v1/stocks/initialize"
	StockQueryEndpoint      = "/b2b/v1/stocks/query"

	StoresGetEndpoint = "/b2b/v1/stores/get"

	DeliveriesEventsEndpoint      = "/b2b/v1/3pl/deliveries/events/query"
	DeliveryStatusUpdateEndpoint  = "/b2b/v1/3pl/deliveries/status/update"
	CourierInfoUpdateEndpoint     = "/b2b/v1/3pl/deliveries/courier/info/update"
	CourierPositionUpdateEndpoint = "/b2b/v1/3pl/deliveries/courier/position/update"
)
