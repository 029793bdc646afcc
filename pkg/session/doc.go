// Package session provides server-side sessions with pluggable storage and
// token transports.
//
// A Manager uses a Transport (encrypted cookie by default, or a header) to
// find the session token and a Store to persist the session record. Stores
// ship for process memory, Redis (msgpack values with key TTLs) and Postgres
// (see Migrations for the schema, applied with pg.Migrate).
//
// The Manager's Destroy and Set methods match what the page bridge needs: the
// version guard destroys the session of a stale client, and component
// tracking stores the last rendered component.
//
//	cookies, _ := cookie.New([]string{secret})
//	sessions := session.New(
//		session.WithCookieManager(cookies),
//		session.WithStore(session.NewRedisStore(rdb, "")),
//	)
//	b := bridge.New(bridge.WithSessionStore(sessions))
package session
