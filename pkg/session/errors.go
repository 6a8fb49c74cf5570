package session

import "fmt"

// 完成流程的步骤名称
const (
	StepEncode  = "encode snapshot"
	StepUpload  = "upload snapshot"
	StepPlayLog = "encode play log"
	StepUpdate  = "update record"
)

// PersistenceError 完成流程中上传快照或更新记录失败
// 会话停留在 Completing 状态，不会自动重试
type PersistenceError struct {
	Step string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
