// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command yamdbctl is the operator tool for a YamDB deployment: schema
// migrations and superuser provisioning.
package main

import "github.com/taibuivan/yamdb/cmd/yamdbctl/commands"

func main() {
	commands.Execute()
}
