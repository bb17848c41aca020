package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/database"
	"planejao/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const dateLayout = "2006-01-02"

type projectItem struct {
	ID             string   `dynamodbav:"id"`
	Name           string   `dynamodbav:"name"`
	Description    string   `dynamodbav:"description"`
	StartDate      string   `dynamodbav:"start_date"`
	PlannedEndDate string   `dynamodbav:"planned_end_date"`
	ActualEndDate  string   `dynamodbav:"actual_end_date,omitempty"`
	Budget         string   `dynamodbav:"budget"`
	Status         string   `dynamodbav:"status"`
	Risk           string   `dynamodbav:"risk"`
	ManagerID      string   `dynamodbav:"manager_id"`
	MemberIDs      []string `dynamodbav:"member_ids"`
	CreatedAt      string   `dynamodbav:"created_at"`
	UpdatedAt      string   `dynamodbav:"updated_at"`
}

// ProjectDynamoRepository persists Project entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI status-index: status (string), projection ALL
//
// The team is stored inline as a list of member ids; capacity counts are derived
// with a projected scan.

type ProjectDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IProjectRepository = (*ProjectDynamoRepository)(nil)

func NewProjectDynamoRepository(ddb *dynamodb.Client, tableName string) *ProjectDynamoRepository {
	return &ProjectDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ProjectDynamoRepository) Create(ctx context.Context, p entities.Project) (entities.Project, error) {
	av, err := attributevalue.MarshalMap(toProjectItem(p))
	if err != nil {
		return entities.Project{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Project{}, err
	}
	return p, nil
}

func (r *ProjectDynamoRepository) GetByID(ctx context.Context, id string) (entities.Project, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Project{}, err
	}
	if len(out.Item) == 0 {
		return entities.Project{}, nil
	}

	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

// List scans the table, or queries status-index when a status filter is set.
func (r *ProjectDynamoRepository) List(ctx context.Context, filter interfaces.ProjectFilter) ([]entities.Project, error) {
	var pages []map[string]types.AttributeValue

	if filter.Status != "" {
		p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(database.ProjectsStatusIndex),
			KeyConditionExpression: aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(filter.Status)},
			},
		})
		for p.HasMorePages() {
			out, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			pages = append(pages, out.Items...)
		}
	} else {
		p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
		for p.HasMorePages() {
			out, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			pages = append(pages, out.Items...)
		}
	}

	items := make([]entities.Project, 0, len(pages))
	for _, raw := range pages {
		var it projectItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromProjectItem(it))
	}
	return items, nil
}

func (r *ProjectDynamoRepository) Update(ctx context.Context, p entities.Project) (entities.Project, error) {
	it := toProjectItem(p)
	members, err := attributevalue.Marshal(it.MemberIDs)
	if err != nil {
		return entities.Project{}, err
	}

	return r.update(ctx, p.ID, func() (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #name = :name, #description = :description, #start_date = :start_date, " +
			"#planned_end_date = :planned_end_date, #budget = :budget, #status = :status, #risk = :risk, " +
			"#manager_id = :manager_id, #member_ids = :member_ids, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":name":             &types.AttributeValueMemberS{Value: it.Name},
			":description":      &types.AttributeValueMemberS{Value: it.Description},
			":start_date":       &types.AttributeValueMemberS{Value: it.StartDate},
			":planned_end_date": &types.AttributeValueMemberS{Value: it.PlannedEndDate},
			":budget":           &types.AttributeValueMemberS{Value: it.Budget},
			":status":           &types.AttributeValueMemberS{Value: it.Status},
			":risk":             &types.AttributeValueMemberS{Value: it.Risk},
			":manager_id":       &types.AttributeValueMemberS{Value: it.ManagerID},
			":member_ids":       members,
			":updated_at":       &types.AttributeValueMemberS{Value: it.UpdatedAt},
		}
		names := map[string]string{
			"#name":             "name",
			"#description":      "description",
			"#start_date":       "start_date",
			"#planned_end_date": "planned_end_date",
			"#actual_end_date":  "actual_end_date",
			"#budget":           "budget",
			"#status":           "status",
			"#risk":             "risk",
			"#manager_id":       "manager_id",
			"#member_ids":       "member_ids",
			"#updated_at":       "updated_at",
		}
		if it.ActualEndDate != "" {
			expr += ", #actual_end_date = :actual_end_date"
			vals[":actual_end_date"] = &types.AttributeValueMemberS{Value: it.ActualEndDate}
		} else {
			expr += " REMOVE #actual_end_date"
		}
		return expr, vals, names
	})
}

// Delete reports false when the project no longer exists.
func (r *ProjectDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ProjectDynamoRepository) ActiveAssignments(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{}
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		ProjectionExpression: aws.String("#status, #member_ids"),
		ExpressionAttributeNames: map[string]string{
			"#status":     "status",
			"#member_ids": "member_ids",
		},
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it projectItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			project := entities.Project{Status: entities.ProjectStatus(it.Status)}
			if !project.IsActiveAssignment() {
				continue
			}
			for _, id := range it.MemberIDs {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *ProjectDynamoRepository) update(
	ctx context.Context,
	id string,
	build func() (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Project, error) {
	updateExpr, values, names := build()

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Project{}, nil
		}
		return entities.Project{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Project{}, nil
	}
	var it projectItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Project{}, err
	}
	return fromProjectItem(it), nil
}

func toProjectItem(p entities.Project) projectItem {
	it := projectItem{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      formatDate(p.StartDate),
		PlannedEndDate: formatDate(p.PlannedEndDate),
		Budget:         floatToString(p.Budget),
		Status:         string(p.Status),
		Risk:           string(p.Risk),
		ManagerID:      p.ManagerID,
		MemberIDs:      p.MemberIDs,
		CreatedAt:      p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if it.MemberIDs == nil {
		it.MemberIDs = []string{}
	}
	if p.ActualEndDate != nil {
		it.ActualEndDate = formatDate(*p.ActualEndDate)
	}
	return it
}

func fromProjectItem(it projectItem) entities.Project {
	start, _ := time.Parse(dateLayout, it.StartDate)
	plannedEnd, _ := time.Parse(dateLayout, it.PlannedEndDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	budget, _ := strconv.ParseFloat(it.Budget, 64)

	p := entities.Project{
		ID:             it.ID,
		Name:           it.Name,
		Description:    it.Description,
		StartDate:      start,
		PlannedEndDate: plannedEnd,
		Budget:         budget,
		Status:         entities.ProjectStatus(it.Status),
		Risk:           entities.RiskLevel(it.Risk),
		ManagerID:      it.ManagerID,
		MemberIDs:      it.MemberIDs,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	if it.ActualEndDate != "" {
		if d, err := time.Parse(dateLayout, it.ActualEndDate); err == nil {
			p.ActualEndDate = &d
		}
	}
	return p
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
