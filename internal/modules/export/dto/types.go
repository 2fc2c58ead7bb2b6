package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	BinaryReachable bool
	ChecksumValid   bool
	LifecycleOK     bool
	Error           string
}

type FormatInfo struct {
	ID          string
	Title       string
	Description string
	FileExt     string
	TimeoutMS   int
}

type ExportInput struct {
	PluginName string
	FormatID   string
	Cwd        string
	Env        map[string]string
}

type ExportOutput struct {
	PluginName string
	FormatID   string
	Filename   string
	Payload    string
	Stderr     string
	ExitCode   int
}
