package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"prime-pkg/prime"
)

func main() {
	n, err := readCandidate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid number: %v\n", err)
		os.Exit(1)
	}

	if prime.IsPrime(n) {
		fmt.Printf("%d is PRIME\n", n)
	} else {
		fmt.Printf("%d is COMPOSITE\n", n)
	}
}

// readCandidate 引数があれば引数から、なければ標準入力から候補を読む
func readCandidate() (int64, error) {
	if len(os.Args) > 1 {
		return strconv.ParseInt(os.Args[1], 10, 64)
	}

	fmt.Print("Enter a number: ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(line), 10, 64)
}
