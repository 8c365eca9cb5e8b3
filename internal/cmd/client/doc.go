// Package client provides the `domerelay` command-line client.
//
// The CLI talks to the relay HTTP API to publish events, resolve active
// events, and manage subscriptions from a terminal. It is primarily intended
// for developers and operators.
//
// Installation
//
//	go install github.com/alastria/dome-relay/cmd/domerelay@latest
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is read
// from the RELAY_HTTP environment variable (default http://127.0.0.1:8080).
//
// Usage
//
//	domerelay event publish \
//	    --iss did:elsi:VATES-A12345678 \
//	    --entity-id urn:ngsi-ld:product-offering:1 \
//	    --previous-hash 0xprev \
//	    --type ProductOffering \
//	    --data-location https://example.org/catalog/1 \
//	    --metadata sbx
//
//	domerelay event active --start 1726833600000 --end 1726920000000 --env sbx
//
//	domerelay sub create --types ProductOffering --own-iss did:elsi:VATES-X \
//	    --endpoint https://listener.example.org/hook
//	domerelay sub list
//	domerelay sub delete <id>
package client
