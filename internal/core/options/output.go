package options

// OutputOptions 定义结果导出的通用参数
type OutputOptions struct {
	OutputJson string // --oj, --outputJson
	OutputCsv  string // --oc, --outputCsv
	OutputYaml string // --oy, --outputYaml
}

// ApplyToParams 将输出参数应用到 Task 的 Params 中
func (o *OutputOptions) ApplyToParams(params map[string]interface{}) {
	if o.OutputJson != "" {
		params[ParamOutputJson] = o.OutputJson
	}
	if o.OutputCsv != "" {
		params[ParamOutputCsv] = o.OutputCsv
	}
	if o.OutputYaml != "" {
		params[ParamOutputYaml] = o.OutputYaml
	}
}

// Any 是否指定了任意一种导出
func (o *OutputOptions) Any() bool {
	return o.OutputJson != "" || o.OutputCsv != "" || o.OutputYaml != ""
}
