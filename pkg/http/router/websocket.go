package router

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gobwas/ws"
	"github.com/justinas/alice"
	"github.com/mailru/easygo/netpoll"
	"github.com/rs/cors"
	"github.com/satria-nugraha/corridorsim/pkg/concurrent"
	"github.com/satria-nugraha/corridorsim/pkg/http/router/controllers"
	http_server "github.com/satria-nugraha/corridorsim/pkg/http/server"
	"go.uber.org/zap"
)

// handleWebsocket serves route-lookup requests over websocket. Connections are
// registered with epoll (netpoll) and served from a bounded goroutine pool, so idle
// clients cost no goroutine, ref:
// https://sergey.kamardin.org/articles/million-websocket-and-go/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	scenarioService controllers.ScenarioService,
	errChan chan error,
) {
	var err error

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore

	})

	mwChain := []alice.Constructor{corsHandler.Handler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log)}
	mainMwChain := alice.New(mwChain...).Then(http.NotFoundHandler())

	srv := http_server.New(ctx, mainMwChain, config, true)
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("route lookup websocket API run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
		return
	}

	api.pool = concurrent.NewGoPool(15, 10)

	api.hub = controllers.NewHub(api.pool, scenarioService)

	api.pool.Spawn(10)

	// accept signals the result of the next incoming connection Accept()
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(conn netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(1000*time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			// pool saturated or transient accept failure: cool the accept loop down
			// for a few milliseconds instead of spinning
			if err != concurrent.ErrScheduleTimeout {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else {
				api.log.Sugar().Fatalf("accept error: %v", err)
			}
		}

	})

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sig:
	case <-ctx.Done():
	}

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.pool.Close()

	log.Println("websocket server stopped")
}

// handle upgrades one accepted connection and parks it on the poller until a
// request frame arrives.
func (api *API) handle(conn net.Conn) {

	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end of the socket
			api.log.Info("user disconnected from websocket server")

			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			err := user.RouteLookup()
			if err != nil {
				api.log.Error("error serving route lookup", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})

	})
}
