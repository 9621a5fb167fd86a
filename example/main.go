// example is a tiny demo program, grounded on the teacher's own
// example/main.go bootstrap sequence (flag parsing, then a single
// golog.SetLogger call before anything else runs) but demonstrating a
// CBOR round trip instead of a transport handshake.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"math/big"

	golog "github.com/bnclabs/golog"
	s "github.com/bnclabs/gosettings"

	"github.com/bnclabs/gocbor"
)

var options struct {
	loglevel string
	pretty   bool
}

func argParse() {
	flag.StringVar(&options.loglevel, "log", "warn", "log level")
	flag.BoolVar(&options.pretty, "pretty", true, "print the decoded value tree")
	flag.Parse()
}

func main() {
	argParse()

	log.Printf("setting gocbor logging\n")
	golog.SetLogger(nil, s.Settings{"log.level": options.loglevel, "log.file": ""})

	m := cbor.NewMap()
	m.Set("name", "gocbor")
	m.Set("version", uint64(1))
	m.Set("tolerance", new(big.Int).Lsh(big.NewInt(1), 100))
	m.Set("tags", []interface{}{"codec", "rfc7049"})

	var buf bytes.Buffer
	opts := cbor.DefaultOptions()
	n, err := cbor.Encode(&buf, m, opts)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Printf("encoded %d bytes: %x\n", n, buf.Bytes())

	v, err := cbor.Decode(&buf, opts)
	if err != nil {
		log.Fatalf("decode: %v", err)
	}
	if options.pretty {
		fmt.Printf("decoded: %#v\n", v)
	}
}
