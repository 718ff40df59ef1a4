package util

import (
	"encoding/json"
	"fmt"
)

func PrettyPrint(data ...interface{}) error {
	fmt.Println()
	byteData, err := json.MarshalIndent(data[len(data)-1], "", " ")
	if err != nil {
		return err
	}
	if len(data) == 1 {
		fmt.Print(data[:len(data)-1]...)
	} else {
		fmt.Println(data[:len(data)-1]...)
	}
	fmt.Println(string(byteData))
	fmt.Println()
	return nil
}

func Recover() {
	if r := recover(); r != nil {
		fmt.Println("Recovered from panic:", r)
	}
}

func RecoverGoroutinePanic() {
	if r := recover(); r != nil {
		fmt.Println("Recovered from go routine panic:", r)
	}
}
