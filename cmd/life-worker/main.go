package main

import (
	"flag"
	"log"
	"net"
	"os"
	"os/signal"

	"tilelife/internal/remote"
)

func main() {
	port := flag.String("port", "8030", "port to listen on")
	flag.Parse()

	l, err := net.Listen("tcp", ":"+*port)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("listening on %s", l.Addr())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		log.Printf("shutting down")
		l.Close()
	}()

	if err := remote.Serve(l); err != nil {
		log.Fatal(err)
	}
}
