package preflight

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// CheckRunningViewers warns when other viewer processes are already running.
// The connector prefers the bus name of the process it launched but falls
// back to any viewer on the bus, so a stray instance can receive commands.
func CheckRunningViewers(binary string) Result {
	name := filepath.Base(strings.TrimSpace(binary))
	r := Result{Name: "Running viewers", Optional: true}
	if name == "" || name == "." {
		r.Detail = "no viewer binary configured"
		return r
	}

	procs, err := process.Processes()
	if err != nil {
		r.Detail = fmt.Sprintf("list processes: %v", err)
		return r
	}
	var pids []int32
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if pname == name {
			pids = append(pids, p.Pid)
		}
	}
	if len(pids) == 0 {
		r.Passed = true
		r.Detail = fmt.Sprintf("no %s instances running", name)
		return r
	}
	slices.Sort(pids)
	list := make([]string, len(pids))
	for i, pid := range pids {
		list[i] = fmt.Sprint(pid)
	}
	r.Detail = fmt.Sprintf("%d %s instance(s) already running (pid %s)", len(pids), name, strings.Join(list, ", "))
	return r
}
