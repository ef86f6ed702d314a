// Command guuid generates and inspects UUIDs.
//
//	guuid                          one UUIDv7
//	guuid -v 4 -n 10               ten UUIDv4
//	guuid -v 5 -ns url -name https://example.com
//	guuid -v 1 -node b6:00:cd:ca:75:c7 -clockseq 15000
//	guuid -inspect urn:uuid:f47ac10b-58cc-4372-a567-0e02b2c3d479
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Lzww0608/guuid/v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "guuid: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	version  int
	count    int
	format   guuid.Format
	space    guuid.UUID
	name     string
	node     guuid.Node
	clockSeq guuid.ClockSeq
	millis   int64
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("guuid", flag.ContinueOnError)
	fs.SetOutput(stdout)

	versionFlag := fs.Int("v", 7, "UUID version to generate: 1, 3, 4, 5 or 7")
	countFlag := fs.Int("n", 1, "Number of UUIDs to generate")
	formatFlag := fs.String("format", "string", "Output format: string, hex or urn")
	nsFlag := fs.String("ns", "dns", "Namespace for v3/v5: dns, url, oid, x500 or a UUID")
	nameFlag := fs.String("name", "", "Name for v3/v5")
	nodeFlag := fs.String("node", "", "Node for v1 as 12 hex digits, colons allowed (default: hardware address)")
	clockSeqFlag := fs.Int("clockseq", -1, "Clock sequence for v1, 0 to 16383 (default: random)")
	msFlag := fs.Int64("ms", -1, "Unix milliseconds for v7 (default: now)")
	inspectFlag := fs.String("inspect", "", "Decode a UUID and print its fields")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if *inspectFlag != "" {
		return inspect(stdout, *inspectFlag)
	}

	opts := options{
		version:  *versionFlag,
		count:    *countFlag,
		name:     *nameFlag,
		node:     guuid.DefaultNode,
		clockSeq: guuid.RandomClockSeq,
		millis:   *msFlag,
	}
	if opts.count < 1 {
		return fmt.Errorf("invalid count %d", opts.count)
	}

	var err error
	if opts.format, err = parseFormat(*formatFlag); err != nil {
		return err
	}
	if opts.space, err = parseNamespace(*nsFlag); err != nil {
		return err
	}
	if *nodeFlag != "" {
		opts.node = guuid.CustomNode(*nodeFlag)
	}
	if *clockSeqFlag >= 0 {
		opts.clockSeq = guuid.CustomClockSeq(*clockSeqFlag)
	}

	for i := 0; i < opts.count; i++ {
		id, err := generate(opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, id.Encode(opts.format))
	}
	return nil
}

func generate(opts options) (guuid.UUID, error) {
	switch opts.version {
	case 1:
		return guuid.NewV1Custom(opts.node, opts.clockSeq)
	case 3:
		return guuid.NewV3(opts.space, []byte(opts.name)), nil
	case 4:
		return guuid.NewV4()
	case 5:
		return guuid.NewV5(opts.space, []byte(opts.name)), nil
	case 7:
		if opts.millis >= 0 {
			return guuid.NewV7FromMillis(uint64(opts.millis))
		}
		return guuid.NewV7()
	default:
		return guuid.Nil, fmt.Errorf("unsupported version %d", opts.version)
	}
}

func parseFormat(s string) (guuid.Format, error) {
	switch strings.ToLower(s) {
	case "string":
		return guuid.FormatString, nil
	case "hex":
		return guuid.FormatHex, nil
	case "urn":
		return guuid.FormatURN, nil
	default:
		return 0, fmt.Errorf("unknown format %q", s)
	}
}

func parseNamespace(s string) (guuid.UUID, error) {
	switch strings.ToLower(s) {
	case "dns":
		return guuid.NamespaceDNS, nil
	case "url":
		return guuid.NamespaceURL, nil
	case "oid":
		return guuid.NamespaceOID, nil
	case "x500":
		return guuid.NamespaceX500, nil
	}
	space, err := guuid.Parse(s)
	if err != nil {
		return guuid.Nil, fmt.Errorf("namespace: %w", err)
	}
	return space, nil
}

func inspect(w io.Writer, s string) error {
	id, err := guuid.Parse(s)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "uuid:      %s\n", id)
	fmt.Fprintf(w, "version:   %s\n", id.Version())
	fmt.Fprintf(w, "variant:   %s\n", id.Variant())
	switch id.Version() {
	case guuid.VersionTimeBased:
		fmt.Fprintf(w, "ticks:     %d\n", id.GregorianTime())
		fmt.Fprintf(w, "unix_us:   %d\n", id.UnixMicro())
		fmt.Fprintf(w, "time:      %s\n", id.Time().UTC().Format(time.RFC3339Nano))
		fmt.Fprintf(w, "clock_seq: %d\n", id.ClockSequence())
		fmt.Fprintf(w, "node:      %s\n", id.Node())
	case guuid.VersionTimeSorted:
		fmt.Fprintf(w, "unix_ms:   %d\n", id.UnixMilli())
		fmt.Fprintf(w, "time:      %s\n", id.Time().UTC().Format(time.RFC3339Nano))
	}
	return nil
}
