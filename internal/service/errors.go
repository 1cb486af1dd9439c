package service

import "errors"

// 基准测试流程的错误分类。
// 致命错误中断整批；ErrRunNotStarted 只产生告警，批次继续。
var (
	// 入参非法（如未选择任何场景），未产生任何副作用
	ErrValidation = errors.New("参数校验失败")

	// 缺少凭证配置（用户密钥里没有 token），在任何网络调用之前返回
	ErrConfiguration = errors.New("缺少凭证配置")

	// 场景/资源不存在，整批中止
	ErrNotFound = errors.New("资源不存在")

	// 上游系统（模拟调用或项目查询）失败，整批中止
	ErrUpstream = errors.New("上游服务错误")

	// Run 已创建但未能启动（存储过程返回空结果）；告警，不中断
	ErrRunNotStarted = errors.New("run 未启动")
)
