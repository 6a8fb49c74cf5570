package config

// 游戏玩法常量
// 本文件定义福笑い核心玩法的参数：评分、键盘微调、初始散布、快照倍率等

// Scoring 评分参数
const (
	// BaseScore 满分，所有部件与目标坐标重合时获得
	BaseScore = 100.0

	// DefaultDifficultyWeight 难度系数无效（空、非数字、0、负数）时使用的默认值
	DefaultDifficultyWeight = 1.0
)

// Keyboard nudge 键盘微调参数
const (
	// KeyMoveStep 方向键每次移动的像素数
	KeyMoveStep = 5.0

	// KeyMoveFastMultiplier 按住 Shift 时的移动倍率
	KeyMoveFastMultiplier = 4.0

	// KeyRepeatDelay 按住方向键后开始连发的帧数（60fps）
	KeyRepeatDelay = 24

	// KeyRepeatInterval 连发间隔帧数
	KeyRepeatInterval = 3
)

// Part placement 部件初始散布参数
// 初始位置在画布内侧 80% 的区域内均匀分布（每个轴 10%~90%）
const (
	// PartSpawnMargin 每侧留白比例
	PartSpawnMargin = 0.1

	// PartSpawnSpan 可散布区域占画布的比例
	PartSpawnSpan = 0.8
)

// Part appearance 部件外观
const (
	// PartShadowBlur 部件阴影模糊半径（像素）
	PartShadowBlur = 8.0

	// PartShadowOpacity 部件阴影不透明度
	PartShadowOpacity = 0.3

	// SelectionStrokeWidth 选中部件描边宽度（像素）
	SelectionStrokeWidth = 3.0
)

// SelectionStrokeColor 选中部件描边颜色（橙色）
var SelectionStrokeColor = [4]uint8{255, 165, 0, 255}

// Completion 完成流程参数
const (
	// SnapshotScale 结果快照的超采样倍率
	SnapshotScale = 2.0

	// CompletionToastSeconds 完成提示自动消失时间（秒）
	CompletionToastSeconds = 1.2

	// ReloadDelaySeconds 提示消失后到重新加载视图的延迟（秒）
	ReloadDelaySeconds = 0.3

	// PersistTimeoutSeconds 上传+更新记录的超时时间（秒）
	PersistTimeoutSeconds = 30

	// ResultImageNameFormat 结果图片文件名格式，参数为记录ID
	ResultImageNameFormat = "result-%s.png"
)

// Volume 音量滑块参数
const (
	// DefaultMusicVolume 默认背景音乐音量
	DefaultMusicVolume = 0.5

	// MusicVolumeStep 音量滑块步进
	MusicVolumeStep = 0.05
)
