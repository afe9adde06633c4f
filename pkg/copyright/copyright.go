package copyright

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"eloquentlog/pkg/version"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/olekukonko/tablewriter"
)

var (
	// 颜色组合
	titleColor   = color.New(color.FgHiCyan, color.Bold)
	versionColor = color.New(color.FgHiGreen)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	defaultColor = color.New(color.FgWhite)
	numberColor  = color.New(color.FgHiYellow)
)

// SystemStatus 启动时展示的系统状态
type SystemStatus struct {
	Version        string
	RedisStatus    bool
	MongoDBStatus  bool
	PostgresStatus bool
	QueueKey       string
	UserCount      int64
	Routes         gin.RoutesInfo
}

// PrintCopyright 打印启动信息
func PrintCopyright(status SystemStatus) {
	printLogo()
	printFrame(status)
	PrintRoutes(os.Stdout, status.Routes)
	fmt.Println()
}

func printFrame(status SystemStatus) {
	titleColor.Println("| System Information")
	defaultColor.Println("│")

	defaultColor.Print("│ Version    : ")
	info := version.GetVersionInfo()
	versionColor.Printf("%s", info["version"])
	if hash, ok := info["git_commit"]; ok && len(hash) >= 8 {
		defaultColor.Printf(" (")
		versionColor.Printf("%s", hash[:8])
		defaultColor.Printf(")")
	}
	defaultColor.Printf(" built at %s (%s)\n", info["build_time"], info["go_version"])

	defaultColor.Println("│")
	defaultColor.Println("│ Backends")
	defaultColor.Print("│ ⚡ Redis    : ")
	printStatus(status.RedisStatus)
	defaultColor.Print("│ ⚡ MongoDB  : ")
	printStatus(status.MongoDBStatus)
	defaultColor.Print("│ ⚡ Postgres : ")
	printStatus(status.PostgresStatus)
	if status.QueueKey != "" {
		defaultColor.Print("│ ⚡ Queue    : ")
		successColor.Println(status.QueueKey)
	}

	defaultColor.Println("│")
	defaultColor.Print("│ ⚡ Users    : ")
	numberColor.Printf("%d\n", status.UserCount)
	defaultColor.Println("│")
}

// PrintRoutes 以表格输出已注册的路由，按路径排序
func PrintRoutes(w io.Writer, routes gin.RoutesInfo) {
	sorted := make(gin.RoutesInfo, len(routes))
	copy(sorted, routes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Method < sorted[j].Method
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Method", "Path", "Handler"})
	table.SetAutoWrapText(false)
	for _, route := range sorted {
		table.Append([]string{route.Method, route.Path, shortHandler(route.Handler)})
	}
	table.Render()
}

// shortHandler 去掉处理器名称中的包路径
func shortHandler(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func printStatus(ok bool) {
	if ok {
		successColor.Print("Connected")
	} else {
		warningColor.Print("Disconnected")
	}
	fmt.Println()
}

func printLogo() {
	logo := `
    ______                             __  __          
   / ____/ /___  ____ ___  _____  ____/ /_/ /___  ____ _
  / __/ / / __ \/ __ ` + "`" + `/ / / / _ \/ __ \/ __/ / __ \/ __ ` + "`" + `/
 / /___/ / /_/ / /_/ / /_/ /  __/ / / / /_/ / /_/ / /_/ / 
/_____/_/\____/\__, /\__,_/\___/_/ /_/\__/_/\____/\__, /  
                 /_/                             /____/   
`
	for _, line := range strings.Split(logo, "\n") {
		titleColor.Println(line)
	}
}
