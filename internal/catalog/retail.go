package catalog

import (
	"encoding/json"

	"stackmap/internal/domain"
)

// Retail returns a fresh copy of the built-in retail technology stack
func Retail() *Catalog {
	return &Catalog{
		Nodes:     retailNodes(),
		Edges:     retailEdges(),
		Presets:   retailPresets(),
		Scenarios: retailScenarios(),
		Payloads:  retailPayloads(),
	}
}

func retailNodes() []domain.Node {
	return []domain.Node{
		domain.NewNode("shop", "Webshop", domain.RoleChannel, "Headless storefront, cart and checkout"),
		domain.NewNode("psp", "Payment Provider", domain.RolePayment, "Card and wallet authorization, capture and refunds"),
		domain.NewNode("oms", "Order Management", domain.RoleCore, "Order orchestration, splitting and status tracking"),
		domain.NewNode("erp", "ERP", domain.RoleCore, "Finance, purchasing and master inventory"),
		domain.NewNode("wms", "Warehouse", domain.RoleFulfillment, "Picking, packing and goods issue"),
		domain.NewNode("carrier", "Carrier", domain.RoleLogistics, "Parcel labels and tracking events"),
		domain.NewNode("crm", "CRM", domain.RoleCustomer, "Customer profiles, segments and consent"),
		domain.NewNode("support", "Support Desk", domain.RoleCustomer, "Tickets, returns and complaints"),
		domain.NewNode("analytics", "Analytics", domain.RoleInsight, "Warehouse of events and KPI dashboards"),
	}
}

func retailEdges() []domain.Edge {
	return []domain.Edge{
		domain.NewEdge("shop-oms", "shop", "oms", "order placed"),
		domain.NewEdge("shop-psp", "shop", "psp", "authorize"),
		domain.NewEdge("psp-oms", "psp", "oms", "payment captured"),
		domain.NewEdge("oms-erp", "oms", "erp", "sales order"),
		domain.NewEdge("erp-shop", "erp", "shop", "stock levels"),
		domain.NewEdge("oms-wms", "oms", "wms", "pick request"),
		domain.NewEdge("wms-erp", "wms", "erp", "goods issue"),
		domain.NewEdge("wms-carrier", "wms", "carrier", "shipment"),
		domain.NewEdge("carrier-oms", "carrier", "oms", "tracking"),
		domain.NewEdge("oms-crm", "oms", "crm", "order history"),
		domain.NewEdge("crm-support", "crm", "support", "customer profile"),
		domain.NewEdge("support-oms", "support", "oms", "return request"),
		domain.NewEdge("oms-analytics", "oms", "analytics", "order events"),
		domain.NewEdge("erp-analytics", "erp", "analytics", "financials"),
		domain.NewEdge("shop-analytics", "shop", "analytics", "clickstream"),
	}
}

func retailPresets() map[domain.LayoutMode]domain.Snapshot {
	return map[domain.LayoutMode]domain.Snapshot{
		domain.LayoutCube: {
			"shop":      {X: -320, Y: -220},
			"psp":       {X: 0, Y: -300},
			"analytics": {X: 320, Y: -220},
			"crm":       {X: -320, Y: 0},
			"oms":       {X: 0, Y: 0},
			"erp":       {X: 320, Y: 0},
			"support":   {X: -320, Y: 260},
			"wms":       {X: 0, Y: 260},
			"carrier":   {X: 320, Y: 260},
		},
		domain.LayoutLanes: {
			"shop":      {X: -450, Y: -200},
			"psp":       {X: -150, Y: -200},
			"analytics": {X: 150, Y: -200},
			"oms":       {X: -450, Y: 0},
			"erp":       {X: -150, Y: 0},
			"wms":       {X: 150, Y: 0},
			"carrier":   {X: 450, Y: 0},
			"crm":       {X: -450, Y: 200},
			"support":   {X: -150, Y: 200},
		},
	}
}

func retailScenarios() []domain.Scenario {
	return []domain.Scenario{
		{
			Key:     "order",
			Title:   "Order to cash",
			EdgeIDs: []string{"shop-oms", "shop-psp", "psp-oms", "oms-erp"},
		},
		{
			Key:     "fulfillment",
			Title:   "Pick, pack and ship",
			EdgeIDs: []string{"oms-wms", "wms-erp", "wms-carrier", "carrier-oms"},
		},
		{
			Key:     "service",
			Title:   "Customer service and returns",
			EdgeIDs: []string{"oms-crm", "crm-support", "support-oms"},
		},
		{
			Key:     "inventory",
			Title:   "Stock synchronisation",
			EdgeIDs: []string{"erp-shop", "wms-erp"},
		},
		{
			Key:     "reporting",
			Title:   "Reporting",
			EdgeIDs: []string{"oms-analytics", "erp-analytics", "shop-analytics"},
		},
	}
}

// shop-analytics intentionally has no example payload
func retailPayloads() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		"shop-oms": json.RawMessage(`{
  "orderId": "WEB-100482",
  "channel": "webshop",
  "customer": {"id": "C-2291", "email": "jane@example.com"},
  "lines": [
    {"sku": "TSHIRT-BLK-M", "qty": 2, "price": 19.95},
    {"sku": "CAP-NVY", "qty": 1, "price": 14.5}
  ],
  "currency": "EUR",
  "total": 54.4
}`),
		"shop-psp": json.RawMessage(`{
  "merchantReference": "WEB-100482",
  "amount": {"value": 5440, "currency": "EUR"},
  "paymentMethod": "card",
  "returnUrl": "https://shop.example.com/checkout/return"
}`),
		"psp-oms": json.RawMessage(`{
  "event": "CAPTURE",
  "pspReference": "8815329842815468",
  "merchantReference": "WEB-100482",
  "amount": {"value": 5440, "currency": "EUR"},
  "success": true
}`),
		"oms-erp": json.RawMessage(`{
  "salesOrder": "SO-77120",
  "sourceOrder": "WEB-100482",
  "soldTo": "C-2291",
  "items": [
    {"material": "TSHIRT-BLK-M", "quantity": 2},
    {"material": "CAP-NVY", "quantity": 1}
  ],
  "paymentStatus": "captured"
}`),
		"erp-shop": json.RawMessage(`{
  "warehouse": "DC-01",
  "updatedAt": "2024-03-01T06:00:00Z",
  "stock": [
    {"sku": "TSHIRT-BLK-M", "available": 134},
    {"sku": "CAP-NVY", "available": 0}
  ]
}`),
		"oms-wms": json.RawMessage(`{
  "pickRequest": "PR-55031",
  "order": "WEB-100482",
  "priority": "standard",
  "lines": [
    {"sku": "TSHIRT-BLK-M", "qty": 2, "bin": "A-12-03"},
    {"sku": "CAP-NVY", "qty": 1, "bin": "C-02-11"}
  ]
}`),
		"wms-erp": json.RawMessage(`{
  "goodsIssue": "GI-30018",
  "delivery": "DL-88127",
  "postedAt": "2024-03-01T14:22:09Z",
  "movements": [
    {"material": "TSHIRT-BLK-M", "quantity": -2},
    {"material": "CAP-NVY", "quantity": -1}
  ]
}`),
		"wms-carrier": json.RawMessage(`{
  "shipment": "SH-440921",
  "service": "parcel-standard",
  "weightKg": 0.62,
  "recipient": {"name": "Jane Doe", "postalCode": "10115", "country": "DE"}
}`),
		"carrier-oms": json.RawMessage(`{
  "trackingNumber": "00340434161094042557",
  "status": "OUT_FOR_DELIVERY",
  "timestamp": "2024-03-02T08:41:00Z",
  "reference": "WEB-100482"
}`),
		"oms-crm": json.RawMessage(`{
  "customerId": "C-2291",
  "order": "WEB-100482",
  "status": "shipped",
  "lifetimeValue": 412.8
}`),
		"crm-support": json.RawMessage(`{
  "customerId": "C-2291",
  "segment": "loyal",
  "openTickets": 0,
  "preferredChannel": "email"
}`),
		"support-oms": json.RawMessage(`{
  "returnId": "RMA-1207",
  "order": "WEB-100482",
  "lines": [{"sku": "CAP-NVY", "qty": 1, "reason": "wrong size"}],
  "refund": "original-payment"
}`),
		"oms-analytics": json.RawMessage(`{
  "event": "order.status_changed",
  "order": "WEB-100482",
  "from": "packed",
  "to": "shipped",
  "at": "2024-03-01T15:03:44Z"
}`),
		"erp-analytics": json.RawMessage(`{
  "period": "2024-02",
  "revenue": 1284533.1,
  "cogs": 702114.9,
  "currency": "EUR"
}`),
	}
}
