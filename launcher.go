package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Dev helper: starts the server and builds the salesctl admin client.
func main() {
	fmt.Println("Starting api-sales...")

	cliName := "salesctl"
	if runtime.GOOS == "windows" {
		cliName = "salesctl.exe"
	}

	server := exec.Command("go", "run", "./cmd/server/main.go")
	server.Stdout = os.Stdout
	server.Stderr = os.Stderr

	if err := server.Start(); err != nil {
		fmt.Printf("failed to start server: %v\n", err)
		return
	}

	time.Sleep(3 * time.Second)

	if _, err := os.Stat(cliName); os.IsNotExist(err) {
		fmt.Println("Building salesctl...")
		build := exec.Command("go", "build", "-o", cliName, "./cmd/salesctl/main.go")
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		build.Run()
		if runtime.GOOS != "windows" {
			os.Chmod(cliName, 0755)
		}
	}

	fmt.Println("Server is up")
	if runtime.GOOS == "windows" {
		fmt.Println("Keep this terminal open. In a new one run: .\\salesctl.exe")
	} else {
		fmt.Println("Keep this terminal open. In a new one run: ./salesctl")
	}

	server.Wait()
}
