// Package rshare contains [Hub], a multicast producer
// that shares one upstream subscription among many downstream subscribers
// and replays a bounded history to subscribers that join late.
//
// The hub always requests unbounded demand from its upstream
// and paces each downstream subscription independently:
// a subscriber's own demand decides when it receives items,
// never which items or in what order.
package rshare
