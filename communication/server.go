package communication

import (
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// StartEmbeddedServer runs an in-process NATS server so the launchpad is
// self-contained when no external broker is configured.
func StartEmbeddedServer(port int) (*server.Server, error) {
	opts := &server.Options{
		Host:   "127.0.0.1",
		Port:   port,
		NoLog:  true,
		NoSigs: true,
	}
	ns, err := server.NewServer(opts)
	if err != nil {
		return nil, fmt.Errorf("create embedded NATS server: %w", err)
	}
	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		return nil, fmt.Errorf("embedded NATS server did not become ready")
	}
	log.Printf("Embedded NATS server listening on %s", ns.ClientURL())
	return ns, nil
}

// Connect dials a NATS server, starting an embedded one on embeddedPort when
// url is empty. The returned shutdown func stops whatever was started.
func Connect(url string, embeddedPort int) (*nats.Conn, func(), error) {
	var ns *server.Server
	if url == "" {
		var err error
		ns, err = StartEmbeddedServer(embeddedPort)
		if err != nil {
			return nil, nil, err
		}
		url = ns.ClientURL()
	}
	nc, err := nats.Connect(url)
	if err != nil {
		if ns != nil {
			ns.Shutdown()
		}
		return nil, nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	shutdown := func() {
		nc.Close()
		if ns != nil {
			ns.Shutdown()
		}
	}
	return nc, shutdown, nil
}
