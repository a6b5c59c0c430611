// This file is part of Chiptracker.
//
// Chiptracker is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chiptracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Chiptracker.  If not, see <https://www.gnu.org/licenses/>.

//go:build statsview

package statsview

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/chiptracker/logger"
)

// Address of the statsview server.
const Address = "localhost:12610"

const url = "/debug/statsview"

var once sync.Once

// Launch starts the stats server in its own goroutine and writes the address
// of the charts to the output. Only the first call starts a server. The
// server runs until the program exits.
func Launch(output io.Writer) {
	once.Do(func() {
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(Address))
		mgr := statsview.New()
		go mgr.Start()
		logger.Logf(logger.Allow, "statsview", "serving runtime charts on %s", Address)
	})
	fmt.Fprintf(output, "runtime charts of the export at http://%s%s\n", Address, url)
}

// Available returns true because the program was built with the statsview
// tag.
func Available() bool {
	return true
}
