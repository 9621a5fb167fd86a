// gocbordump reads a stream of CBOR-encoded values from stdin and writes a
// human-readable dump of each decoded value tree to stdout. It is a
// diagnostic tool, not part of the codec itself — grounded on the
// teacher's example/main.go and perf/main.go bootstrap (flag parsing, a
// single golog.SetLogger call up front).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	golog "github.com/bnclabs/golog"
	s "github.com/bnclabs/gosettings"
	"github.com/shopspring/decimal"

	"github.com/bnclabs/gocbor"
)

var options struct {
	loglevel string
	eof      bool
}

func argParse() {
	flag.StringVar(&options.loglevel, "log", "warn", "log level")
	flag.BoolVar(&options.eof, "eof-ok", true, "stop cleanly at end of input instead of erroring")
	flag.Parse()
}

func main() {
	argParse()
	golog.SetLogger(nil, s.Settings{"log.level": options.loglevel, "log.file": ""})

	opts := cbor.DefaultOptions()
	type eofSentinel struct{}
	if options.eof {
		opts = opts.WithEOF(eofSentinel{})
	}

	for i := 0; ; i++ {
		v, err := cbor.Decode(os.Stdin, opts)
		if err != nil {
			log.Fatalf("item %d: %v", i, err)
		}
		if _, ok := v.(eofSentinel); ok {
			return
		}
		dump(v, 0)
		fmt.Println()
	}
}

func dump(v cbor.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	switch val := v.(type) {
	case nil:
		fmt.Print("null")
	case cbor.Undefined:
		fmt.Print("undefined")
	case bool, uint64, int64, float64, string:
		fmt.Printf("%v", val)
	case []byte:
		fmt.Printf("h'%x'", val)
	case *big.Int:
		fmt.Printf("%s", val.String())
	case *big.Rat:
		fmt.Printf("%s/%s", val.Num(), val.Denom())
	case decimal.Decimal:
		fmt.Printf("%s", val.String())
	case cbor.Identifier:
		if val.IsKeyword {
			fmt.Printf(":%s", val.Name)
		} else {
			fmt.Printf("%s", val.Name)
		}
	case cbor.Literal:
		fmt.Printf("#%s ", val.TagName)
		dump(val.Form, depth)
	case cbor.Simple:
		fmt.Printf("simple(%d)", val.Code)
	case *cbor.Tag:
		fmt.Printf("tag(%d) ", val.Number)
		dump(val.Value, depth)
	case []cbor.Value:
		fmt.Println("[")
		for _, item := range val {
			fmt.Print(indent + "  ")
			dump(item, depth+1)
			fmt.Println()
		}
		fmt.Print(indent + "]")
	case *cbor.Map:
		fmt.Println("{")
		for _, ent := range val.Entries() {
			fmt.Print(indent + "  ")
			dump(ent.Key, depth+1)
			fmt.Print(": ")
			dump(ent.Value, depth+1)
			fmt.Println()
		}
		fmt.Print(indent + "}")
	default:
		fmt.Printf("%v", val)
	}
}
