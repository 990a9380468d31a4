package service

import (
	"context"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"finedu/backend/internal/logger"
	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
)

// CaseTool names one upstream tool the case walks through.
type CaseTool struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

// TeachingCase is one entry of the built-in case library.
type TeachingCase struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	Level           string     `json:"level"`
	DurationMinutes int        `json:"durationMinutes"`
	ToolCount       int        `json:"toolCount"`
	Description     string     `json:"description"`
	Objectives      []string   `json:"objectives"`
	Tools           []CaseTool `json:"tools,omitempty"`
	Exercise        string     `json:"exercise,omitempty"`
	ReferenceAnswer string     `json:"referenceAnswer,omitempty"`
}

// CaseService serves the case library and collects exercise submissions.
type CaseService interface {
	ListCases() []TeachingCase
	GetCase(id string) (TeachingCase, error)
	SubmitExercise(ctx context.Context, userID int64, caseID string, questionID *string, answer string) (model.ExerciseSubmission, error)
	ListSubmissions(ctx context.Context, userID int64, caseID *string) ([]model.ExerciseSubmission, error)
}

type caseService struct {
	submissions repository.SubmissionRepository
	sanitizer   *bluemonday.Policy
}

func NewCaseService(submissions repository.SubmissionRepository) CaseService {
	return &caseService{
		submissions: submissions,
		sanitizer:   bluemonday.StrictPolicy(),
	}
}

func (s *caseService) ListCases() []TeachingCase {
	out := make([]TeachingCase, len(teachingCases))
	copy(out, teachingCases)
	return out
}

func (s *caseService) GetCase(id string) (TeachingCase, error) {
	for _, c := range teachingCases {
		if c.ID == id {
			return c, nil
		}
	}
	return TeachingCase{}, ErrNotFound
}

func (s *caseService) SubmitExercise(ctx context.Context, userID int64, caseID string, questionID *string, answer string) (model.ExerciseSubmission, error) {
	if _, err := s.GetCase(caseID); err != nil {
		return model.ExerciseSubmission{}, err
	}
	answer = strings.TrimSpace(s.sanitizer.Sanitize(answer))
	if answer == "" {
		return model.ExerciseSubmission{}, ErrInvalid
	}

	sub, err := s.submissions.Create(ctx, model.ExerciseSubmission{
		UserID:     userID,
		CaseID:     caseID,
		QuestionID: questionID,
		Answer:     answer,
	})
	if err != nil {
		return model.ExerciseSubmission{}, err
	}

	logger.Info("exercise submitted",
		"module", "cases", "action", "submit", "resource", "submission", "result", "ok",
		"case_id", caseID, "submission_id", sub.ID)
	return sub, nil
}

func (s *caseService) ListSubmissions(ctx context.Context, userID int64, caseID *string) ([]model.ExerciseSubmission, error) {
	if caseID != nil {
		if _, err := s.GetCase(*caseID); err != nil {
			return nil, err
		}
	}
	return s.submissions.ListByUser(ctx, userID, caseID)
}

var teachingCases = []TeachingCase{
	{
		ID:              "1",
		Title:           "案例1: 基金分析实战",
		Subtitle:        "易方达蓝筹精选全面分析",
		Level:           "初级",
		DurationMinutes: 90,
		ToolCount:       9,
		Description:     "学习如何系统分析一只基金, 从基本信息到投资建议",
		Objectives: []string{
			"掌握7步基金分析框架",
			"学会使用分析工具",
			"能够撰写专业分析报告",
		},
		Tools: []CaseTool{
			{Name: "GuessFundCode", Purpose: "确认基金代码"},
			{Name: "BatchGetFundsDetail", Purpose: "获取基金详情"},
			{Name: "GetBatchFundPerformance", Purpose: "业绩分析"},
			{Name: "BatchGetFundNavHistory", Purpose: "净值走势"},
			{Name: "BatchGetFundsHolding", Purpose: "持仓结构"},
			{Name: "GetFundDiagnosis", Purpose: "基金诊断"},
			{Name: "DiagnoseFundPortfolio", Purpose: "综合诊断"},
		},
		Exercise: `任务: 全面分析一只基金

要求:
1. 选择一只基金进行分析 (建议: 易方达蓝筹精选 005827)
2. 按照7步分析框架完成分析
3. 撰写完整的分析报告 (1000字以上)
4. 给出明确的投资建议

评分标准 (总分100分):
- 基本信息查询 (10分)
- 业绩表现分析 (20分)
- 持仓结构分析 (20分)
- 费率成本分析 (15分)
- 风险评估 (20分)
- 投资建议 (10分)
- 报告质量 (5分)`,
		ReferenceAnswer: `基金分析报告示例

一、基本情况
- 基金代码: 005827
- 基金名称: 易方达蓝筹精选混合
- 成立日期: 2018-06-20
- 基金规模: 150亿元

二、业绩表现
- 近一年收益: +18.5%
- 近三年年化: +22.3%
- 最大回撤: -28.5%
- 夏普比率: 1.2

三、持仓分析
重仓行业:
- 食品饮料: 28%
- 金融: 15%
- 医药: 12%

四、投资建议
- 适合稳健型以上投资者
- 建议配置比例: 30-40%
- 建议持有期限: 3年以上`,
	},
	{
		ID:              "2",
		Title:           "案例2: 构建稳健型投资组合",
		Subtitle:        "50万元资金的配置方案",
		Level:           "中级",
		DurationMinutes: 180,
		ToolCount:       12,
		Description:     "为45岁客户构建稳健型投资组合, 学习资产配置方法",
		Objectives: []string{
			"掌握资产配置的完整流程",
			"学会根据客户需求定制方案",
			"理解风险分散和相关性",
			"掌握组合分析工具的综合运用",
		},
		Tools: []CaseTool{
			{Name: "GetAssetAllocationPlan", Purpose: "资产配置方案"},
			{Name: "SearchFunds", Purpose: "基金搜索"},
			{Name: "AnalyzePortfolioRisk", Purpose: "风险评估"},
			{Name: "GetFundsCorrelation", Purpose: "相关性分析"},
			{Name: "GetFundsBackTest", Purpose: "组合回测"},
			{Name: "DiagnoseFundPortfolio", Purpose: "组合诊断"},
			{Name: "MonteCarloSimulate", Purpose: "蒙特卡洛模拟"},
		},
		Exercise: `任务: 构建投资组合

客户信息:
- 年龄: 45岁
- 风险偏好: 稳健型
- 投资金额: 50万元
- 投资期限: 5年
- 收益目标: 年化6-8%

要求:
1. 设计资产配置方案
2. 选择具体基金 (至少5只)
3. 进行组合分析 (风险、相关性、回测)
4. 撰写投资方案书`,
		ReferenceAnswer: `投资组合方案示例

资产配置:
- 股票基金: 30% (15万)
- 债券基金: 50% (25万)
- 货币基金: 20% (10万)

基金清单:
1. 易方达蓝筹精选 (110022) - 8万
2. 招商中证白酒 (161725) - 4万
3. 兴全商业模式 (163406) - 3万
4. 易方达稳健收益 (110008) - 12万
5. 博时信用债 (050011) - 8万
6. 工银双利债券 (485111) - 5万
7. 易方达天天理财 (000704) - 10万

预期表现:
- 年化收益: 7-9%
- 最大回撤: -15%
- 夏普比率: 0.7`,
	},
	{
		ID:              "3",
		Title:           "案例3: 家庭财务规划",
		Subtitle:        "三口之家的完整规划",
		Level:           "中级",
		DurationMinutes: 150,
		ToolCount:       7,
		Description:     "为三口之家制定完整的财务规划方案",
		Objectives: []string{
			"掌握家庭财务规划流程",
			"学会现金流管理",
			"能够制定投资方案",
		},
	},
	{
		ID:              "4",
		Title:           "案例4: 风险管理实战",
		Subtitle:        "组合风险评估与优化",
		Level:           "高级",
		DurationMinutes: 120,
		ToolCount:       6,
		Description:     "学习如何评估和控制投资组合风险",
		Objectives: []string{
			"理解风险指标的含义",
			"掌握风险评估方法",
			"学会优化组合降低风险",
		},
	},
}
